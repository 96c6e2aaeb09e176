// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

/*
aggregate.go - Dashboard Aggregations

All aggregations are pure functions over the set projection so they can
be recomputed from the store at request time. The synced data set is a
single user's history, small enough that full recomputation beats
maintaining incremental materialized views.

Weeks are ISO 8601 weeks rendered as "2026-W35" in UTC.
*/

package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/gravitus/internal/models/hevy"
)

// WeekBucket is one ISO week of training.
type WeekBucket struct {
	Week     string  `json:"week"`
	Workouts int     `json:"workouts"`
	Sets     int     `json:"sets"`
	Volume   float64 `json:"volume"`
}

// GroupShare is the training share of one muscle group or equipment
// category.
type GroupShare struct {
	Group  string  `json:"group"`
	Sets   int     `json:"sets"`
	Volume float64 `json:"volume"`
}

// ProgressPoint is one workout's best effort on a single exercise.
type ProgressPoint struct {
	Date         string  `json:"date"`
	WorkoutID    string  `json:"workout_id"`
	MaxWeightKg  float64 `json:"max_weight_kg"`
	BestSetVol   float64 `json:"best_set_volume"`
	EstimatedMax float64 `json:"estimated_one_rm"`
}

// weekKey renders the ISO week of a unix timestamp in UTC.
func weekKey(unix int64) string {
	year, week := time.Unix(unix, 0).UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeeklyBuckets groups training by ISO week: workout count, working set
// count and total volume. Buckets come back sorted by week.
func WeeklyBuckets(workouts []hevy.Workout, rows []SetRow) []WeekBucket {
	buckets := make(map[string]*WeekBucket)

	bucket := func(week string) *WeekBucket {
		b, ok := buckets[week]
		if !ok {
			b = &WeekBucket{Week: week}
			buckets[week] = b
		}
		return b
	}

	for i := range workouts {
		bucket(weekKey(workouts[i].StartTime)).Workouts++
	}
	for i := range rows {
		if !working(&rows[i]) {
			continue
		}
		b := bucket(weekKey(rows[i].StartTime))
		b.Sets++
		b.Volume += rows[i].Volume
	}

	out := make([]WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

// MuscleBreakdown totals working sets and volume per primary muscle
// group, largest set count first.
func MuscleBreakdown(rows []SetRow) []GroupShare {
	return breakdown(rows, func(r *SetRow) string { return r.MuscleGroup })
}

// EquipmentBreakdown totals working sets and volume per equipment
// category, largest set count first.
func EquipmentBreakdown(rows []SetRow) []GroupShare {
	return breakdown(rows, func(r *SetRow) string { return r.Equipment })
}

func breakdown(rows []SetRow, groupOf func(*SetRow) string) []GroupShare {
	shares := make(map[string]*GroupShare)
	for i := range rows {
		if !working(&rows[i]) {
			continue
		}
		group := groupOf(&rows[i])
		if group == "" {
			group = "other"
		}
		s, ok := shares[group]
		if !ok {
			s = &GroupShare{Group: group}
			shares[group] = s
		}
		s.Sets++
		s.Volume += rows[i].Volume
	}

	out := make([]GroupShare, 0, len(shares))
	for _, s := range shares {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sets != out[j].Sets {
			return out[i].Sets > out[j].Sets
		}
		return out[i].Group < out[j].Group
	})
	return out
}

// ExerciseProgress charts one exercise over time: per workout, the
// heaviest working set, the best single-set volume and an Epley
// one-rep-max estimate. Points come back in chronological order.
func ExerciseProgress(rows []SetRow, exerciseTitle string) []ProgressPoint {
	points := make(map[string]*ProgressPoint)
	order := make(map[string]int64)

	for i := range rows {
		r := &rows[i]
		if r.ExerciseTitle != exerciseTitle || !working(r) {
			continue
		}

		p, ok := points[r.WorkoutID]
		if !ok {
			p = &ProgressPoint{
				Date:      time.Unix(r.StartTime, 0).UTC().Format("2006-01-02"),
				WorkoutID: r.WorkoutID,
			}
			points[r.WorkoutID] = p
			order[r.WorkoutID] = r.StartTime
		}

		if r.WeightKg > p.MaxWeightKg {
			p.MaxWeightKg = r.WeightKg
		}
		if r.Volume > p.BestSetVol {
			p.BestSetVol = r.Volume
		}
		if est := epley(r.WeightKg, r.Reps); est > p.EstimatedMax {
			p.EstimatedMax = est
		}
	}

	out := make([]ProgressPoint, 0, len(points))
	for _, p := range points {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if order[out[i].WorkoutID] != order[out[j].WorkoutID] {
			return order[out[i].WorkoutID] < order[out[j].WorkoutID]
		}
		return out[i].WorkoutID < out[j].WorkoutID
	})
	return out
}

// epley estimates a one-rep max as w * (1 + reps/30). A single rep is
// the lift itself; zero reps estimates nothing.
func epley(weightKg float64, reps int) float64 {
	if reps <= 0 || weightKg <= 0 {
		return 0
	}
	if reps == 1 {
		return weightKg
	}
	return weightKg * (1 + float64(reps)/30)
}
