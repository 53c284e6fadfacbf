package progress

import (
	"slices"
	"sort"
	"time"

	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/store"
)

// PointsPerLevel is the number of points between levels.
const PointsPerLevel = 100

// Stats is the player's cumulative progress.
type Stats struct {
	Points            int
	Level             int
	CompletedProblems int
	Missions          int
	PerfectMissions   int
	Badges            map[BadgeID]time.Time
	CategoriesPlayed  []quiz.Category
}

// New returns the stats of a player who has not played yet.
func New() Stats {
	return Stats{Level: 1, Badges: make(map[BadgeID]time.Time)}
}

// LevelFor returns the level reached with points.
func LevelFor(points int) int {
	if points < 0 {
		points = 0
	}
	return 1 + points/PointsPerLevel
}

// Has reports whether badge id has been earned.
func (s Stats) Has(id BadgeID) bool {
	_, ok := s.Badges[id]
	return ok
}

// BadgeList returns earned badges, oldest first.
func (s Stats) BadgeList() []Badge {
	out := make([]Badge, 0, len(s.Badges))
	for id, at := range s.Badges {
		out = append(out, Badge{ID: id, Name: BadgeName(id), EarnedAt: at})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EarnedAt.Equal(out[j].EarnedAt) {
			return out[i].EarnedAt.Before(out[j].EarnedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Apply folds a mission result into s and returns the new stats with the
// badges earned by this mission. s is not modified. Missions with no
// answered problem are ignored.
func Apply(s Stats, r quiz.Result, now time.Time) (Stats, []Badge) {
	if r.Answered == 0 {
		return s, nil
	}

	next := s.clone()
	next.Points += r.Score
	next.Level = LevelFor(next.Points)
	next.CompletedProblems += r.Answered
	next.Missions++
	if r.Perfect() {
		next.PerfectMissions++
	}
	if r.Category != "" && !slices.Contains(next.CategoriesPlayed, r.Category) {
		next.CategoriesPlayed = append(next.CategoriesPlayed, r.Category)
	}

	var earned []Badge
	award := func(id BadgeID) {
		if next.Has(id) {
			return
		}
		next.Badges[id] = now
		earned = append(earned, Badge{ID: id, Name: BadgeName(id), EarnedAt: now})
	}

	award(BadgeFirstMission)
	if r.Perfect() {
		award(PerfectBadge(r.Category))
	}
	if next.Points >= CenturyPoints {
		award(BadgeCentury)
	}
	if len(next.CategoriesPlayed) == len(quiz.Categories) {
		award(BadgeExplorer)
	}
	return next, earned
}

func (s Stats) clone() Stats {
	c := s
	c.Badges = make(map[BadgeID]time.Time, len(s.Badges))
	for k, v := range s.Badges {
		c.Badges[k] = v
	}
	c.CategoriesPlayed = slices.Clone(s.CategoriesPlayed)
	if c.Level < 1 {
		c.Level = LevelFor(c.Points)
	}
	return c
}

// FromData restores stats from a snapshot. nil yields New().
func FromData(d *store.ProgressData) Stats {
	s := New()
	if d == nil {
		return s
	}
	s.Points = d.Points
	s.Level = LevelFor(d.Points)
	s.CompletedProblems = d.CompletedProblems
	s.Missions = d.Missions
	s.PerfectMissions = d.PerfectMissions
	for id, at := range d.Badges {
		s.Badges[BadgeID(id)] = at
	}
	for _, name := range d.CategoriesPlayed {
		if c, err := quiz.ParseCategory(name); err == nil && !slices.Contains(s.CategoriesPlayed, c) {
			s.CategoriesPlayed = append(s.CategoriesPlayed, c)
		}
	}
	return s
}

// Data converts stats to their persisted form.
func (s Stats) Data() *store.ProgressData {
	d := &store.ProgressData{
		Points:            s.Points,
		CompletedProblems: s.CompletedProblems,
		Missions:          s.Missions,
		PerfectMissions:   s.PerfectMissions,
	}
	if len(s.Badges) > 0 {
		d.Badges = make(map[string]time.Time, len(s.Badges))
		for id, at := range s.Badges {
			d.Badges[string(id)] = at
		}
	}
	for _, c := range s.CategoriesPlayed {
		d.CategoriesPlayed = append(d.CategoriesPlayed, string(c))
	}
	return d
}
