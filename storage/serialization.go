// Copyright 2025 Plant QA Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/plantqa/qamatrix/core"
)

// MarshalConcernID serializes a ConcernID to bytes.
func MarshalConcernID(serial core.ConcernID) []byte {
	buf := make([]byte, core.ConcernIDMUS.Size(serial))
	core.ConcernIDMUS.Marshal(serial, buf)
	return buf
}

// UnmarshalConcernID deserializes a ConcernID from bytes.
func UnmarshalConcernID(data []byte) (core.ConcernID, error) {
	serial, _, err := core.ConcernIDMUS.Unmarshal(data)
	return serial, err
}

// MarshalMatrixEntry serializes a MatrixEntry to bytes.
func MarshalMatrixEntry(entry *core.MatrixEntry) []byte {
	buf := make([]byte, core.MatrixEntryMUS.Size(*entry))
	core.MatrixEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalMatrixEntry deserializes a MatrixEntry from bytes.
func UnmarshalMatrixEntry(data []byte) (*core.MatrixEntry, error) {
	entry, _, err := core.MatrixEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
