// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/tomtom215/gravitus/internal/models/hevy"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func ts(day string) int64 {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return t.Unix()
}

// benchPress builds a workout with one bench press exercise.
func benchPress(id string, day string, sets ...hevy.Set) hevy.Workout {
	return hevy.Workout{
		ID:        id,
		Name:      "Push Day",
		StartTime: ts(day),
		Exercises: []hevy.Exercise{{
			Title:             "Bench Press (Barbell)",
			MuscleGroup:       "chest",
			EquipmentCategory: "barbell",
			Sets:              sets,
		}},
	}
}

func workingSet(index int, weight float64, reps int) hevy.Set {
	return hevy.Set{Index: index, Indicator: hevy.SetIndicatorNormal, WeightKg: fptr(weight), Reps: iptr(reps)}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFlattenComputesVolume(t *testing.T) {
	rows := Flatten([]hevy.Workout{
		benchPress("w1", "2026-03-02", workingSet(0, 100, 5), workingSet(1, 102.5, 3)),
	})

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if !almostEqual(rows[0].Volume, 500) {
		t.Errorf("set 0 volume = %f, want 500", rows[0].Volume)
	}
	if !almostEqual(rows[1].Volume, 307.5) {
		t.Errorf("set 1 volume = %f, want 307.5", rows[1].Volume)
	}
	if rows[0].MuscleGroup != "chest" || rows[0].Equipment != "barbell" {
		t.Errorf("context not carried: %+v", rows[0])
	}
}

func TestFlattenHandlesNonWeightSets(t *testing.T) {
	plank := hevy.Workout{
		ID:        "w1",
		StartTime: ts("2026-03-02"),
		Exercises: []hevy.Exercise{{
			Title:       "Plank",
			MuscleGroup: "abdominals",
			Sets: []hevy.Set{{
				Index:           0,
				Indicator:       hevy.SetIndicatorNormal,
				DurationSeconds: iptr(60),
			}},
		}},
	}

	rows := Flatten([]hevy.Workout{plank})
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Volume != 0 {
		t.Errorf("duration set volume = %f, want 0", rows[0].Volume)
	}
}

func TestFlattenOrderIsDeterministic(t *testing.T) {
	workouts := []hevy.Workout{
		benchPress("w2", "2026-03-09", workingSet(0, 100, 5)),
		benchPress("w1", "2026-03-02", workingSet(0, 95, 5)),
	}

	rows := Flatten(workouts)
	if rows[0].WorkoutID != "w1" || rows[1].WorkoutID != "w2" {
		t.Errorf("rows not in chronological order: %s, %s", rows[0].WorkoutID, rows[1].WorkoutID)
	}
}

func TestWeeklyBuckets(t *testing.T) {
	workouts := []hevy.Workout{
		benchPress("w1", "2026-03-02", workingSet(0, 100, 5)), // ISO week 10
		benchPress("w2", "2026-03-04", workingSet(0, 100, 5)), // ISO week 10
		benchPress("w3", "2026-03-09", workingSet(0, 105, 5)), // ISO week 11
	}
	rows := Flatten(workouts)

	buckets := WeeklyBuckets(workouts, rows)
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}

	if buckets[0].Week != "2026-W10" || buckets[0].Workouts != 2 {
		t.Errorf("week 10 bucket = %+v", buckets[0])
	}
	if !almostEqual(buckets[0].Volume, 1000) {
		t.Errorf("week 10 volume = %f, want 1000", buckets[0].Volume)
	}
	if buckets[1].Week != "2026-W11" || buckets[1].Workouts != 1 {
		t.Errorf("week 11 bucket = %+v", buckets[1])
	}
}

func TestWeeklyBucketsExcludeWarmupsFromVolume(t *testing.T) {
	warmup := hevy.Set{Index: 0, Indicator: hevy.SetIndicatorWarmup, WeightKg: fptr(60), Reps: iptr(10)}
	workouts := []hevy.Workout{
		benchPress("w1", "2026-03-02", warmup, workingSet(1, 100, 5)),
	}
	rows := Flatten(workouts)

	buckets := WeeklyBuckets(workouts, rows)
	if len(buckets) != 1 {
		t.Fatalf("buckets = %d, want 1", len(buckets))
	}
	if buckets[0].Sets != 1 {
		t.Errorf("working sets = %d, want 1", buckets[0].Sets)
	}
	if !almostEqual(buckets[0].Volume, 500) {
		t.Errorf("volume = %f, want 500 (warmup excluded)", buckets[0].Volume)
	}
}

func TestMuscleBreakdownSortsBySets(t *testing.T) {
	squat := hevy.Workout{
		ID:        "w1",
		StartTime: ts("2026-03-02"),
		Exercises: []hevy.Exercise{
			{
				Title:       "Squat (Barbell)",
				MuscleGroup: "quadriceps",
				Sets: []hevy.Set{
					workingSet(0, 140, 5),
					workingSet(1, 140, 5),
				},
			},
			{
				Title:       "Romanian Deadlift",
				MuscleGroup: "hamstrings",
				Sets:        []hevy.Set{workingSet(0, 100, 8)},
			},
		},
	}

	shares := MuscleBreakdown(Flatten([]hevy.Workout{squat}))
	if len(shares) != 2 {
		t.Fatalf("shares = %d, want 2", len(shares))
	}
	if shares[0].Group != "quadriceps" || shares[0].Sets != 2 {
		t.Errorf("top share = %+v", shares[0])
	}
	if shares[1].Group != "hamstrings" {
		t.Errorf("second share = %+v", shares[1])
	}
}

func TestBreakdownMapsEmptyGroupToOther(t *testing.T) {
	w := hevy.Workout{
		ID:        "w1",
		StartTime: ts("2026-03-02"),
		Exercises: []hevy.Exercise{{
			Title: "Mystery Machine",
			Sets:  []hevy.Set{workingSet(0, 50, 10)},
		}},
	}

	shares := EquipmentBreakdown(Flatten([]hevy.Workout{w}))
	if len(shares) != 1 || shares[0].Group != "other" {
		t.Errorf("shares = %+v, want single \"other\" group", shares)
	}
}

func TestExerciseProgress(t *testing.T) {
	workouts := []hevy.Workout{
		benchPress("w1", "2026-03-02", workingSet(0, 100, 5), workingSet(1, 102.5, 2)),
		benchPress("w2", "2026-03-09", workingSet(0, 105, 5)),
	}

	points := ExerciseProgress(Flatten(workouts), "Bench Press (Barbell)")
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}

	if points[0].WorkoutID != "w1" || points[1].WorkoutID != "w2" {
		t.Errorf("points out of order: %+v", points)
	}
	if !almostEqual(points[0].MaxWeightKg, 102.5) {
		t.Errorf("w1 max weight = %f, want 102.5", points[0].MaxWeightKg)
	}
	if !almostEqual(points[0].BestSetVol, 500) {
		t.Errorf("w1 best set volume = %f, want 500", points[0].BestSetVol)
	}
	// Epley for 100x5 beats 102.5x2.
	if !almostEqual(points[0].EstimatedMax, 100*(1+5.0/30)) {
		t.Errorf("w1 estimated 1RM = %f", points[0].EstimatedMax)
	}
	if points[1].Date != "2026-03-09" {
		t.Errorf("w2 date = %s", points[1].Date)
	}
}

func TestExerciseProgressIgnoresOtherExercises(t *testing.T) {
	workouts := []hevy.Workout{
		benchPress("w1", "2026-03-02", workingSet(0, 100, 5)),
	}
	points := ExerciseProgress(Flatten(workouts), "Deadlift (Barbell)")
	if len(points) != 0 {
		t.Errorf("points = %d, want 0", len(points))
	}
}

func TestEpley(t *testing.T) {
	tests := []struct {
		weight float64
		reps   int
		want   float64
	}{
		{100, 1, 100},
		{100, 5, 100 * (1 + 5.0/30)},
		{100, 0, 0},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := epley(tt.weight, tt.reps); !almostEqual(got, tt.want) {
			t.Errorf("epley(%f, %d) = %f, want %f", tt.weight, tt.reps, got, tt.want)
		}
	}
}
