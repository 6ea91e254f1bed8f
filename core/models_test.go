package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	id1 := IDFromContent("brk|t10|belt insecure")
	id2 := IDFromContent("brk|t10|belt insecure")
	id3 := IDFromContent("brk|t10|belt secure")

	if id1 != id2 {
		t.Errorf("identical content produced different IDs: %d != %d", id1, id2)
	}
	if id1 == id3 {
		t.Error("different content produced the same ID")
	}
	if id1 == 0 {
		t.Error("ID should not be zero for non-empty content")
	}
}

func TestDefectMatchText(t *testing.T) {
	d := Defect{Description: "belt insecure", Details: "left front", Quantity: 1}
	if got := d.MatchText(); got != "belt insecure left front" {
		t.Errorf("MatchText() = %q", got)
	}

	empty := Defect{Quantity: 1}
	if got := empty.MatchText(); got != "" {
		t.Errorf("MatchText() on empty defect = %q, want empty", got)
	}
}

func TestDefectDedupKey(t *testing.T) {
	a := Defect{Code: "D12", Location: "T10", Description: "Belt Insecure"}
	b := Defect{Code: "d12", Location: "t10", Description: "belt insecure", Details: "other details"}

	if a.DedupKey() != b.DedupKey() {
		t.Errorf("dedup keys differ: %q vs %q", a.DedupKey(), b.DedupKey())
	}
}

func TestMatchResultMatched(t *testing.T) {
	serial := ConcernID(7)
	matched := MatchResult{DefectIndex: 0, MatchedSerial: &serial, Confidence: 0.8, Method: MethodLocal}
	unmatched := MatchResult{DefectIndex: 1, Confidence: 0, Method: MethodLocal}

	if !matched.Matched() {
		t.Error("Matched() = false for a result with a serial")
	}
	if unmatched.Matched() {
		t.Error("Matched() = true for a result without a serial")
	}
}

func TestMatrixEntrySerializationRoundTrip(t *testing.T) {
	entry := MatrixEntry{
		SerialNo:             42,
		Concern:              "seat belt loose LH",
		Station:              "T10",
		Designation:          "Trim",
		DefectRating:         5,
		Weekly:               WeeklyRecurrence{0, 1, 0, 0, 2, 3},
		Trim:                 map[string]int{"T10": 1, "T20": 3},
		Chassis:              map[string]int{"C40": 5},
		Final:                map[string]int{"F10": 1, ResidualTorqueKey: 3},
		QControl:             map[string]int{"freq_control_1_1": 1},
		QControlDetail:       map[string]int{"CVT": 1},
		Rating:               ControlRating{MFG: 10, Quality: 1, Plant: 5},
		Recurrence:           6,
		RecurrencePlusDefect: 11,
		WorkstationStatus:    StatusNG,
		MFGStatus:            StatusOK,
		PlantStatus:          StatusOK,
		UpdatedAt:            time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC),
	}

	bs := make([]byte, MatrixEntryMUS.Size(entry))
	n := MatrixEntryMUS.Marshal(entry, bs)
	if n != len(bs) {
		t.Fatalf("Marshal wrote %d bytes, Size predicted %d", n, len(bs))
	}

	decoded, read, err := MatrixEntryMUS.Unmarshal(bs)
	if err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if read != n {
		t.Errorf("Unmarshal consumed %d bytes, want %d", read, n)
	}

	if decoded.SerialNo != entry.SerialNo || decoded.Concern != entry.Concern ||
		decoded.Weekly != entry.Weekly || decoded.Rating != entry.Rating ||
		decoded.WorkstationStatus != entry.WorkstationStatus ||
		!decoded.UpdatedAt.Equal(entry.UpdatedAt) {
		t.Errorf("round trip mismatch: got %+v", decoded)
	}
	if decoded.Final[ResidualTorqueKey] != 3 {
		t.Errorf("Final scores lost: %v", decoded.Final)
	}
}

func TestMatrixEntrySerializationRejectsTruncatedData(t *testing.T) {
	entry := MatrixEntry{SerialNo: 1, Concern: "door misaligned", DefectRating: 1}
	bs := make([]byte, MatrixEntryMUS.Size(entry))
	MatrixEntryMUS.Marshal(entry, bs)

	if _, _, err := MatrixEntryMUS.Unmarshal(bs[:len(bs)/2]); err == nil {
		t.Error("Unmarshal of truncated data succeeded, want error")
	}
}
