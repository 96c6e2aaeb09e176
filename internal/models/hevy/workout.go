// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package hevy

// Workout is one completed workout session as returned by the remote API.
//
// ID is the stable remote-assigned identity. Index is assigned once at
// creation, grows monotonically across the account's history and is never
// reassigned on update; it exists only to drive the backfill cursor.
// UpdatedAt is remote-authoritative and is the freshness signal the delta
// sync uploads.
type Workout struct {
	ID          string     `json:"id"`
	Index       int        `json:"index"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartTime   int64      `json:"start_time"`
	EndTime     int64      `json:"end_time"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	ImageURLs   []string   `json:"image_urls"`
	Exercises   []Exercise `json:"exercises"`
}

// Exercise is one exercise entry within a workout or routine, with its
// ordered sets.
type Exercise struct {
	Title             string   `json:"title"`
	MuscleGroup       string   `json:"muscle_group"`
	OtherMuscles      []string `json:"other_muscles"`
	EquipmentCategory string   `json:"equipment_category"`
	ExerciseType      string   `json:"exercise_type"`
	Sets              []Set    `json:"sets"`
}

// Set indicator values used by the remote service.
const (
	SetIndicatorNormal  = "normal"
	SetIndicatorWarmup  = "warmup"
	SetIndicatorFailure = "failure"
	SetIndicatorDropset = "dropset"
)

// Set is a single set entry. Measurement fields are pointers because the
// remote omits the ones that do not apply to the exercise type (a plank has
// duration but no reps, a run has distance but no weight).
type Set struct {
	Index           int      `json:"index"`
	Indicator       string   `json:"indicator"`
	WeightKg        *float64 `json:"weight_kg"`
	Reps            *int     `json:"reps"`
	DistanceMeters  *float64 `json:"distance_meters"`
	DurationSeconds *int     `json:"duration_seconds"`
	RPE             *float64 `json:"rpe"`
}
