// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

/*
projection.go - Set-Level Projection

Analytics works on a flat set-level projection of the synced workouts:
one row per performed set, denormalized with its workout and exercise
context. Volume is weight x reps; sets missing either field (duration
or distance work) carry zero volume and still count toward frequency
and breakdowns.
*/

package analytics

import (
	"sort"

	"github.com/tomtom215/gravitus/internal/models/hevy"
)

// SetRow is one performed set with its workout and exercise context.
type SetRow struct {
	WorkoutID     string  `json:"workout_id"`
	WorkoutName   string  `json:"workout_name"`
	StartTime     int64   `json:"start_time"`
	ExerciseTitle string  `json:"exercise_title"`
	MuscleGroup   string  `json:"muscle_group"`
	Equipment     string  `json:"equipment"`
	SetIndex      int     `json:"set_index"`
	Indicator     string  `json:"indicator"`
	WeightKg      float64 `json:"weight_kg"`
	Reps          int     `json:"reps"`
	Volume        float64 `json:"volume"`
	RPE           float64 `json:"rpe,omitempty"`
}

// Flatten projects workouts into set rows, ordered by workout start time
// then set index so output is deterministic regardless of map iteration
// order upstream.
func Flatten(workouts []hevy.Workout) []SetRow {
	var rows []SetRow
	for i := range workouts {
		w := &workouts[i]
		for j := range w.Exercises {
			ex := &w.Exercises[j]
			for k := range ex.Sets {
				rows = append(rows, newSetRow(w, ex, &ex.Sets[k]))
			}
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].StartTime != rows[b].StartTime {
			return rows[a].StartTime < rows[b].StartTime
		}
		if rows[a].WorkoutID != rows[b].WorkoutID {
			return rows[a].WorkoutID < rows[b].WorkoutID
		}
		return rows[a].SetIndex < rows[b].SetIndex
	})
	return rows
}

func newSetRow(w *hevy.Workout, ex *hevy.Exercise, s *hevy.Set) SetRow {
	row := SetRow{
		WorkoutID:     w.ID,
		WorkoutName:   w.Name,
		StartTime:     w.StartTime,
		ExerciseTitle: ex.Title,
		MuscleGroup:   ex.MuscleGroup,
		Equipment:     ex.EquipmentCategory,
		SetIndex:      s.Index,
		Indicator:     s.Indicator,
	}
	if s.WeightKg != nil {
		row.WeightKg = *s.WeightKg
	}
	if s.Reps != nil {
		row.Reps = *s.Reps
	}
	if s.RPE != nil {
		row.RPE = *s.RPE
	}
	if s.WeightKg != nil && s.Reps != nil {
		row.Volume = *s.WeightKg * float64(*s.Reps)
	}
	return row
}

// working reports whether a set counts toward training load. Warmup
// sets are excluded from volume and progress figures but still appear
// in the raw projection.
func working(row *SetRow) bool {
	return row.Indicator != hevy.SetIndicatorWarmup
}
