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


package core

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for persisted records. Hand-written so that decoding is
// strict: truncated or malformed bytes surface an error instead of producing
// a partially populated entry.
var (
	ConcernIDMUS   = concernIDSer{}
	WeeklyMUS      = weeklySer{}
	RatingMUS      = ratingSer{}
	MatrixEntryMUS = matrixEntrySer{}

	scoreMapMUS = ord.NewMapSer[string, int](ord.String, varint.Int)
)

type concernIDSer struct{}

func (concernIDSer) Marshal(id ConcernID, bs []byte) int {
	return varint.Int.Marshal(int(id), bs)
}

func (concernIDSer) Unmarshal(bs []byte) (ConcernID, int, error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return ConcernID(v), n, err
}

func (concernIDSer) Size(id ConcernID) int {
	return varint.Int.Size(int(id))
}

func (concernIDSer) Skip(bs []byte) (int, error) {
	return varint.Int.Skip(bs)
}

type weeklySer struct{}

func (weeklySer) Marshal(w WeeklyRecurrence, bs []byte) (n int) {
	for _, count := range w {
		n += varint.Int.Marshal(count, bs[n:])
	}
	return n
}

func (weeklySer) Unmarshal(bs []byte) (w WeeklyRecurrence, n int, err error) {
	for i := range w {
		var count, read int
		count, read, err = varint.Int.Unmarshal(bs[n:])
		n += read
		if err != nil {
			return WeeklyRecurrence{}, n, err
		}
		if count < 0 {
			return WeeklyRecurrence{}, n, fmt.Errorf("%w: negative count %d", ErrInvalidWeeklyList, count)
		}
		w[i] = count
	}
	return w, n, nil
}

func (weeklySer) Size(w WeeklyRecurrence) (size int) {
	for _, count := range w {
		size += varint.Int.Size(count)
	}
	return size
}

func (weeklySer) Skip(bs []byte) (n int, err error) {
	for i := 0; i < WeeklyWindow; i++ {
		var read int
		read, err = varint.Int.Skip(bs[n:])
		n += read
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

type ratingSer struct{}

func (ratingSer) Marshal(r ControlRating, bs []byte) (n int) {
	n = varint.Int.Marshal(r.MFG, bs)
	n += varint.Int.Marshal(r.Quality, bs[n:])
	n += varint.Int.Marshal(r.Plant, bs[n:])
	return n
}

func (ratingSer) Unmarshal(bs []byte) (r ControlRating, n int, err error) {
	var read int
	if r.MFG, read, err = varint.Int.Unmarshal(bs); err != nil {
		return ControlRating{}, read, err
	}
	n = read
	if r.Quality, read, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return ControlRating{}, n + read, err
	}
	n += read
	if r.Plant, read, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return ControlRating{}, n + read, err
	}
	n += read
	return r, n, nil
}

func (ratingSer) Size(r ControlRating) int {
	return varint.Int.Size(r.MFG) + varint.Int.Size(r.Quality) + varint.Int.Size(r.Plant)
}

func (ratingSer) Skip(bs []byte) (n int, err error) {
	for i := 0; i < 3; i++ {
		var read int
		read, err = varint.Int.Skip(bs[n:])
		n += read
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

type matrixEntrySer struct{}

func (matrixEntrySer) Marshal(e MatrixEntry, bs []byte) (n int) {
	n = ConcernIDMUS.Marshal(e.SerialNo, bs)
	n += ord.String.Marshal(e.Concern, bs[n:])
	n += ord.String.Marshal(e.Station, bs[n:])
	n += ord.String.Marshal(e.Designation, bs[n:])
	n += varint.Int.Marshal(e.DefectRating, bs[n:])
	n += WeeklyMUS.Marshal(e.Weekly, bs[n:])
	n += scoreMapMUS.Marshal(e.Trim, bs[n:])
	n += scoreMapMUS.Marshal(e.Chassis, bs[n:])
	n += scoreMapMUS.Marshal(e.Final, bs[n:])
	n += scoreMapMUS.Marshal(e.QControl, bs[n:])
	n += scoreMapMUS.Marshal(e.QControlDetail, bs[n:])
	n += RatingMUS.Marshal(e.Rating, bs[n:])
	n += varint.Int.Marshal(e.Recurrence, bs[n:])
	n += varint.Int.Marshal(e.RecurrencePlusDefect, bs[n:])
	n += ord.String.Marshal(string(e.WorkstationStatus), bs[n:])
	n += ord.String.Marshal(string(e.MFGStatus), bs[n:])
	n += ord.String.Marshal(string(e.PlantStatus), bs[n:])
	n += varint.Int64.Marshal(e.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (matrixEntrySer) Unmarshal(bs []byte) (e MatrixEntry, n int, err error) {
	var read int
	if e.SerialNo, read, err = ConcernIDMUS.Unmarshal(bs); err != nil {
		return MatrixEntry{}, read, err
	}
	n = read
	if e.Concern, read, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.Station, read, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.Designation, read, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.DefectRating, read, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.Weekly, read, err = WeeklyMUS.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.Trim, read, err = scoreMapMUS.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.Chassis, read, err = scoreMapMUS.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.Final, read, err = scoreMapMUS.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.QControl, read, err = scoreMapMUS.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.QControlDetail, read, err = scoreMapMUS.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.Rating, read, err = RatingMUS.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.Recurrence, read, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	if e.RecurrencePlusDefect, read, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read

	var status string
	if status, read, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	e.WorkstationStatus = Status(status)
	n += read
	if status, read, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	e.MFGStatus = Status(status)
	n += read
	if status, read, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	e.PlantStatus = Status(status)
	n += read

	var micros int64
	if micros, read, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return MatrixEntry{}, n + read, err
	}
	n += read
	e.UpdatedAt = time.UnixMicro(micros).UTC()

	return e, n, nil
}

func (matrixEntrySer) Size(e MatrixEntry) (size int) {
	size = ConcernIDMUS.Size(e.SerialNo)
	size += ord.String.Size(e.Concern)
	size += ord.String.Size(e.Station)
	size += ord.String.Size(e.Designation)
	size += varint.Int.Size(e.DefectRating)
	size += WeeklyMUS.Size(e.Weekly)
	size += scoreMapMUS.Size(e.Trim)
	size += scoreMapMUS.Size(e.Chassis)
	size += scoreMapMUS.Size(e.Final)
	size += scoreMapMUS.Size(e.QControl)
	size += scoreMapMUS.Size(e.QControlDetail)
	size += RatingMUS.Size(e.Rating)
	size += varint.Int.Size(e.Recurrence)
	size += varint.Int.Size(e.RecurrencePlusDefect)
	size += ord.String.Size(string(e.WorkstationStatus))
	size += ord.String.Size(string(e.MFGStatus))
	size += ord.String.Size(string(e.PlantStatus))
	size += varint.Int64.Size(e.UpdatedAt.UnixMicro())
	return size
}

func (matrixEntrySer) Skip(bs []byte) (n int, err error) {
	_, n, err = MatrixEntryMUS.Unmarshal(bs)
	return n, err
}
