package core

import (
	"errors"
	"testing"
)

func TestValidateConcern(t *testing.T) {
	tests := []struct {
		name    string
		concern *Concern
		wantErr error
	}{
		{
			name:    "valid concern",
			concern: &Concern{SerialNo: 1, Text: "seat belt loose LH", Station: "T10"},
			wantErr: nil,
		},
		{
			name:    "valid concern without station",
			concern: &Concern{SerialNo: 2, Text: "paint scratch on door"},
			wantErr: nil,
		},
		{
			name:    "valid concern with serial 0",
			concern: &Concern{SerialNo: 0, Text: "wiring harness pinched"},
			wantErr: nil,
		},
		{
			name:    "nil concern",
			concern: nil,
			wantErr: ErrInvalidConcern,
		},
		{
			name:    "empty text",
			concern: &Concern{SerialNo: 3, Text: ""},
			wantErr: ErrEmptyConcernText,
		},
		{
			name:    "whitespace text",
			concern: &Concern{SerialNo: 3, Text: "   "},
			wantErr: ErrEmptyConcernText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConcern(tt.concern)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateConcern() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateConcern() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefect(t *testing.T) {
	tests := []struct {
		name    string
		defect  *Defect
		wantErr error
	}{
		{
			name:    "valid defect",
			defect:  &Defect{Description: "belt insecure", Location: "t10", Gravity: "3", Quantity: 2},
			wantErr: nil,
		},
		{
			name:    "valid defect with only location",
			defect:  &Defect{Location: "c40", Quantity: 1},
			wantErr: nil,
		},
		{
			name:    "valid defect without gravity",
			defect:  &Defect{Description: "rattle from dashboard", Quantity: 1},
			wantErr: nil,
		},
		{
			name:    "nil defect",
			defect:  nil,
			wantErr: ErrInvalidDefect,
		},
		{
			name:    "no usable fields",
			defect:  &Defect{Gravity: "1", Quantity: 1},
			wantErr: ErrEmptyDefect,
		},
		{
			name:    "zero quantity",
			defect:  &Defect{Description: "loose bolt", Quantity: 0},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "unknown gravity",
			defect:  &Defect{Description: "loose bolt", Gravity: "X9", Quantity: 1},
			wantErr: ErrInvalidGravity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDefect(tt.defect)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDefect() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDefect() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMatrixEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *MatrixEntry
		wantErr error
	}{
		{
			name:    "valid entry",
			entry:   &MatrixEntry{SerialNo: 1, Concern: "door misaligned", DefectRating: 3},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidMatrixEntry,
		},
		{
			name:    "empty concern",
			entry:   &MatrixEntry{SerialNo: 1, DefectRating: 1},
			wantErr: ErrEmptyConcernText,
		},
		{
			name:    "off-scale rating",
			entry:   &MatrixEntry{SerialNo: 1, Concern: "door misaligned", DefectRating: 2},
			wantErr: ErrInvalidDefectRating,
		},
		{
			name: "negative weekly bucket",
			entry: &MatrixEntry{
				SerialNo: 1, Concern: "door misaligned", DefectRating: 5,
				Weekly: WeeklyRecurrence{0, 0, -1, 0, 0, 0},
			},
			wantErr: ErrInvalidWeeklyList,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMatrixEntry(tt.entry)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMatrixEntry() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMatrixEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidGravity(t *testing.T) {
	for _, g := range []string{"", "1", "5", "a", "D", " b "} {
		if !ValidGravity(g) {
			t.Errorf("ValidGravity(%q) = false, want true", g)
		}
	}
	for _, g := range []string{"0", "6", "E", "high"} {
		if ValidGravity(g) {
			t.Errorf("ValidGravity(%q) = true, want false", g)
		}
	}
}

func TestValidSource(t *testing.T) {
	for _, s := range []string{"DVX", "sca", " yard "} {
		if !ValidSource(s) {
			t.Errorf("ValidSource(%q) = false, want true", s)
		}
	}
	if ValidSource("LINE") {
		t.Error("ValidSource(\"LINE\") = true, want false")
	}
}
