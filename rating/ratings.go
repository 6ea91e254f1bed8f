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


package rating

import (
	"log/slog"

	"github.com/plantqa/qamatrix/core"
)

// sumScores sums all values of a score map, skipping the excluded keys.
func sumScores(scores map[string]int, exclude ...string) int {
	skip := make(map[string]bool, len(exclude))
	for _, key := range exclude {
		skip[key] = true
	}

	total := 0
	for key, val := range scores {
		if skip[key] {
			continue
		}
		total += val
	}
	return total
}

// MFGRating is the manufacturing rating:
// sum(Trim) + sum(Chassis) + sum(Final without ResidualTorque).
func MFGRating(trim, chassis, final map[string]int) int {
	return sumScores(trim) + sumScores(chassis) + sumScores(final, core.ResidualTorqueKey)
}

// QualityRating is the sum of the quality-gate control scores.
func QualityRating(qControl map[string]int) int {
	return sumScores(qControl)
}

// PlantRating is the end-of-plant rating:
// ResidualTorque + sum(QControl) + sum(QControlDetail).
func PlantRating(final, qControl, qControlDetail map[string]int) int {
	return final[core.ResidualTorqueKey] + sumScores(qControl) + sumScores(qControlDetail)
}

// Statuses derives the three OK/NG verdicts. The workstation is NG whenever
// any recurrence exists; otherwise each level is OK when its rating covers
// the defect severity.
func Statuses(defectRating, mfgRating, plantRating int, hasRecurrence bool) (workstation, mfg, plant core.Status) {
	mfg = core.StatusNG
	if mfgRating >= defectRating {
		mfg = core.StatusOK
	}
	plant = core.StatusNG
	if plantRating >= defectRating {
		plant = core.StatusOK
	}
	workstation = mfg
	if hasRecurrence {
		workstation = core.StatusNG
	}
	return workstation, mfg, plant
}

// Recalculate rewrites every derived field of an entry from its score maps,
// severity, and weekly window: the three ratings, recurrence totals, and the
// OK/NG statuses.
func Recalculate(entry *core.MatrixEntry) {
	entry.Rating = core.ControlRating{
		MFG:     MFGRating(entry.Trim, entry.Chassis, entry.Final),
		Quality: QualityRating(entry.QControl),
		Plant:   PlantRating(entry.Final, entry.QControl, entry.QControlDetail),
	}

	entry.Recurrence = entry.Weekly.Total()
	entry.RecurrencePlusDefect = entry.Recurrence + entry.DefectRating

	entry.WorkstationStatus, entry.MFGStatus, entry.PlantStatus = Statuses(
		entry.DefectRating,
		entry.Rating.MFG,
		entry.Rating.Plant,
		entry.Weekly.HasRecurrence(),
	)
}

// Summary counts NG verdicts across a recalculated matrix.
type Summary struct {
	Total         int
	WorkstationNG int
	MFGNG         int
	PlantNG       int
	// Critical counts severity-5 concerns that are NG at plant level.
	Critical int
}

// RecalculateAll recalculates every entry in place and returns the NG
// summary.
func RecalculateAll(entries []core.MatrixEntry) Summary {
	summary := Summary{Total: len(entries)}
	for i := range entries {
		Recalculate(&entries[i])

		if entries[i].WorkstationStatus == core.StatusNG {
			summary.WorkstationNG++
		}
		if entries[i].MFGStatus == core.StatusNG {
			summary.MFGNG++
		}
		if entries[i].PlantStatus == core.StatusNG {
			summary.PlantNG++
			if entries[i].DefectRating == 5 {
				summary.Critical++
			}
		}
	}

	slog.Debug("matrix recalculated",
		"total", summary.Total,
		"workstation_ng", summary.WorkstationNG,
		"mfg_ng", summary.MFGNG,
		"plant_ng", summary.PlantNG)

	return summary
}
