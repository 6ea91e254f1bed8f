// Package rating derives QA matrix ratings and OK/NG statuses from area
// control scores and the rolling recurrence window.
//
// Three ratings exist per entry: MFG (manufacturing-line controls), Quality
// (quality-gate controls), and Plant (end-of-plant controls). The
// ResidualTorque score lives in the Final area but counts toward Plant, not
// MFG. Each rating is compared against the entry's 1-3-5 defect severity to
// produce OK/NG statuses; any recurrence in the 6-week window forces the
// workstation status to NG regardless of rating.
package rating
