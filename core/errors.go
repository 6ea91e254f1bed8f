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

import "errors"

// Domain validation errors
var (
	// ErrInvalidConcern indicates a Concern failed validation.
	ErrInvalidConcern = errors.New("invalid concern")

	// ErrInvalidDefect indicates a Defect failed validation.
	ErrInvalidDefect = errors.New("invalid defect")

	// ErrInvalidMatrixEntry indicates a MatrixEntry failed validation.
	ErrInvalidMatrixEntry = errors.New("invalid matrix entry")

	// ErrEmptyConcernText indicates the concern Text field is empty.
	ErrEmptyConcernText = errors.New("concern text cannot be empty")

	// ErrEmptyDefect indicates a defect row carries no usable data.
	ErrEmptyDefect = errors.New("defect needs a description, details, or location")

	// ErrInvalidQuantity indicates a non-positive defect quantity.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrInvalidGravity indicates an out-of-domain gravity value.
	ErrInvalidGravity = errors.New("invalid gravity value")

	// ErrInvalidDefectRating indicates a severity outside the 1-3-5 scale.
	ErrInvalidDefectRating = errors.New("defect rating must be 1, 3, or 5")

	// ErrInvalidWeeklyList indicates a malformed serialized weekly recurrence list.
	ErrInvalidWeeklyList = errors.New("malformed weekly recurrence list")

	// ErrInvalidConfidence indicates a confidence outside [0, 1].
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")
)
