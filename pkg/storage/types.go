package storage

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Metric is one of the fixed rankings the leaderboard can be computed over.
type Metric int

const (
	Playtime Metric = iota
	Kills
	Deaths
	Roadkills
	Medics
	BusDrivers
)

// AllMetrics is the display order of the leaderboard sections.
var AllMetrics = []Metric{Playtime, Kills, Deaths, Roadkills, Medics, BusDrivers}

var metricExpressions = map[Metric]string{
	Playtime:   "session_duration",
	Kills:      "kills",
	Deaths:     "deaths",
	Roadkills:  "roadkills",
	Medics:     "bandage_friendlies + tourniquet_friendlies + saline_friendlies + morphine_friendlies",
	BusDrivers: "points_as_driver_of_players",
}

var metricNames = map[Metric]string{
	Playtime:   "playtime",
	Kills:      "kills",
	Deaths:     "deaths",
	Roadkills:  "roadkills",
	Medics:     "medics",
	BusDrivers: "bus_drivers",
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return "unknown"
}

// Expression is the per-row SQL expression summed for this metric.
func (m Metric) Expression() string {
	return metricExpressions[m]
}

func (m Metric) Valid() bool {
	_, ok := metricExpressions[m]
	return ok
}

// Totals are the global, ignore-list independent sums shown above the leaderboards.
type Totals struct {
	Players        int64   `db:"total_players"`
	Kills          int64   `db:"total_kills"`
	Deaths         int64   `db:"total_deaths"`
	AIKills        int64   `db:"total_ai_kills"`
	Shots          int64   `db:"total_shots"`
	DistanceMeters float64 `db:"total_distance"`
}

// RankedRow is one aggregated row of a top-N query.
type RankedRow struct {
	PlayerUID string `db:"player_uid"`
	Value     int64  `db:"value"`
}

// IgnoreSet holds the playerUIDs excluded from rankings.
type IgnoreSet map[string]struct{}

func NewIgnoreSet(uids []string) IgnoreSet {
	set := make(IgnoreSet, len(uids))
	for _, uid := range uids {
		if uid != "" {
			set[uid] = struct{}{}
		}
	}
	return set
}

func (s IgnoreSet) Contains(uid string) bool {
	_, ok := s[uid]
	return ok
}

// Slice returns the members in ascending order, so generated queries are stable.
func (s IgnoreSet) Slice() []string {
	keys := maps.Keys(s)
	slices.Sort(keys)
	return keys
}
