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
	"strings"
)

// validGravities is the accepted gravity domain; empty is allowed since many
// report rows omit it.
var validGravities = map[string]bool{
	"": true, "1": true, "2": true, "3": true, "4": true, "5": true,
	"A": true, "B": true, "C": true, "D": true,
}

// ValidateConcern validates a Concern according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//
// NOT validated:
//   - SerialNo (0 is valid before a sequence assigns one)
//   - Station and Designation (optional metadata)
func ValidateConcern(concern *Concern) error {
	if concern == nil {
		return fmt.Errorf("%w: concern is nil", ErrInvalidConcern)
	}

	if strings.TrimSpace(concern.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConcern, ErrEmptyConcernText)
	}

	return nil
}

// ValidateDefect validates a Defect according to domain rules.
//
// Validation rules:
//   - At least one of Description, Details, Location must be non-empty
//   - Quantity must be >= 1
//   - Gravity, if set, must be in the accepted domain
func ValidateDefect(defect *Defect) error {
	if defect == nil {
		return fmt.Errorf("%w: defect is nil", ErrInvalidDefect)
	}

	if defect.Description == "" && defect.Details == "" && defect.Location == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDefect, ErrEmptyDefect)
	}

	if defect.Quantity < 1 {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidDefect, ErrInvalidQuantity, defect.Quantity)
	}

	if !ValidGravity(defect.Gravity) {
		return fmt.Errorf("%w: %w (got %q)", ErrInvalidDefect, ErrInvalidGravity, defect.Gravity)
	}

	return nil
}

// ValidateMatrixEntry validates a MatrixEntry according to domain rules.
//
// Validation rules:
//   - Concern text must not be empty
//   - DefectRating must be on the 1-3-5 severity scale
//   - Weekly buckets must be non-negative
func ValidateMatrixEntry(entry *MatrixEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidMatrixEntry)
	}

	if strings.TrimSpace(entry.Concern) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMatrixEntry, ErrEmptyConcernText)
	}

	if !ValidDefectRating(entry.DefectRating) {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidMatrixEntry, ErrInvalidDefectRating, entry.DefectRating)
	}

	for _, count := range entry.Weekly {
		if count < 0 {
			return fmt.Errorf("%w: %w", ErrInvalidMatrixEntry, ErrInvalidWeeklyList)
		}
	}

	return nil
}

// ValidGravity checks whether a gravity value is in the accepted domain.
// Values are compared case-insensitively.
func ValidGravity(gravity string) bool {
	return validGravities[strings.ToUpper(strings.TrimSpace(gravity))]
}

// ValidSource checks whether a defect source is one of the known systems.
func ValidSource(source string) bool {
	switch strings.ToUpper(strings.TrimSpace(source)) {
	case SourceDVX, SourceSCA, SourceYARD:
		return true
	}
	return false
}

// ValidDefectRating checks whether a severity is on the 1-3-5 scale.
func ValidDefectRating(rating int) bool {
	return rating == 1 || rating == 3 || rating == 5
}

// ValidConfidence checks whether a confidence score is within [0, 1].
func ValidConfidence(confidence float64) bool {
	return confidence >= 0 && confidence <= 1
}
