package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier used for deduplication keys.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces the identical ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ConcernID is the stable serial number of a cataloged QA concern.
type ConcernID int

// Concern is one row of the QA matrix catalog: a described quality concern
// with manufacturing-process location metadata. The catalog is immutable for
// the duration of a matching run.
type Concern struct {
	SerialNo    ConcernID
	Text        string
	Station     string
	Designation string
}

// Defect source systems.
const (
	SourceDVX  = "DVX"
	SourceSCA  = "SCA"
	SourceYARD = "YARD"
)

// Defect is a single inspection-report entry describing an observed
// manufacturing issue.
type Defect struct {
	Date        string
	Location    string
	Code        string
	Description string
	Details     string
	Gravity     string
	Quantity    int // repeat quantity, always >= 1
	Source      string
	Responsible string
	POFFamily   string
	POFCode     string
}

// MatchText returns the free text used for matching against concerns.
func (d *Defect) MatchText() string {
	return strings.TrimSpace(d.Description + " " + d.Details)
}

// DedupKey returns the case-insensitive identity key used when merging
// duplicate report rows.
func (d *Defect) DedupKey() string {
	return strings.ToLower(d.Code + "|" + d.Location + "|" + d.Description)
}

// MatchMethod identifies which matcher produced a MatchResult.
type MatchMethod string

const (
	// MethodLocal marks results produced by the lexical scorer.
	MethodLocal MatchMethod = "local"
	// MethodRemote marks results produced by the semantic-matching service.
	MethodRemote MatchMethod = "remote"
)

// MatchResult is the outcome of matching one defect against the concern
// catalog. Exactly one MatchResult exists per input defect; unmatched defects
// carry a nil MatchedSerial and zero confidence.
type MatchResult struct {
	DefectIndex   int
	MatchedSerial *ConcernID
	Confidence    float64 // in [0, 1]
	Reason        string
	Method        MatchMethod
}

// Matched reports whether the defect was linked to a concern.
func (m *MatchResult) Matched() bool {
	return m.MatchedSerial != nil
}

// AggregatedMatch is the per-concern rollup of accepted matches.
type AggregatedMatch struct {
	SerialNo      ConcernID
	Concern       string
	DefectEntries []Defect
	RepeatCount   int     // sum of defect quantities
	AvgConfidence float64 // mean confidence of accepted matches, in [0, 1]
}

// Status is an OK/NG control verdict.
type Status string

const (
	StatusOK Status = "OK"
	StatusNG Status = "NG"
)

// ControlRating is the three-tier rating derived from area scores.
type ControlRating struct {
	MFG     int
	Quality int
	Plant   int
}

// ResidualTorqueKey is the final-area score that counts toward the Plant
// rating instead of MFG.
const ResidualTorqueKey = "ResidualTorque"

// MatrixEntry is a persisted QA matrix row: the concern itself plus its
// severity rating, area control scores, rolling recurrence window, and the
// derived ratings and statuses.
type MatrixEntry struct {
	SerialNo             ConcernID
	Concern              string
	Station              string
	Designation          string
	DefectRating         int // 1-3-5 severity scale
	Weekly               WeeklyRecurrence
	Trim                 map[string]int
	Chassis              map[string]int
	Final                map[string]int
	QControl             map[string]int
	QControlDetail       map[string]int
	Rating               ControlRating
	Recurrence           int
	RecurrencePlusDefect int
	WorkstationStatus    Status
	MFGStatus            Status
	PlantStatus          Status
	UpdatedAt            time.Time
}

// ConcernRecord extracts the matchable catalog view of the entry.
func (e *MatrixEntry) ConcernRecord() Concern {
	return Concern{
		SerialNo:    e.SerialNo,
		Text:        e.Concern,
		Station:     e.Station,
		Designation: e.Designation,
	}
}
