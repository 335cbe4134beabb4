package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/pgxscan"
)

const (
	DefaultTopN   = 5
	UnknownPlayer = "Unknown"
)

// StatsRepository runs the read-only aggregate queries behind the leaderboard.
type StatsRepository struct {
	conn         PgxIface
	statsTable   string
	playersTable string
	ignore       IgnoreSet
}

func NewStatsRepository(conn PgxIface, statsTable, playersTable string, ignore IgnoreSet) *StatsRepository {
	if ignore == nil {
		ignore = IgnoreSet{}
	}
	return &StatsRepository{
		conn:         conn,
		statsTable:   statsTable,
		playersTable: playersTable,
		ignore:       ignore,
	}
}

// CheckTables reports which of the two configured tables is missing, if any.
func (repo *StatsRepository) CheckTables(ctx context.Context) ([]string, error) {
	var missing []string
	for _, table := range []string{repo.playersTable, repo.statsTable} {
		exists, err := TableExists(ctx, repo.conn, table)
		if err != nil {
			return nil, dataSourceError("table check "+table, err)
		}
		if !exists {
			missing = append(missing, table)
		}
	}
	return missing, nil
}

// Totals sums the whole stats table. The ignore list is deliberately not applied here.
func (repo *StatsRepository) Totals(ctx context.Context) (Totals, error) {
	var totals Totals

	err := repo.conn.QueryRow(ctx, "SELECT COUNT(*) FROM "+quoteIdent(repo.playersTable)+";").Scan(&totals.Players)
	if err != nil {
		return Totals{}, dataSourceError("count players", err)
	}

	var sums Totals
	err = pgxscan.Get(ctx, repo.conn, &sums, "SELECT "+
		"COALESCE(SUM(kills), 0)::bigint AS total_kills, "+
		"COALESCE(SUM(deaths), 0)::bigint AS total_deaths, "+
		"COALESCE(SUM(ai_kills), 0)::bigint AS total_ai_kills, "+
		"COALESCE(SUM(shots), 0)::bigint AS total_shots, "+
		"COALESCE(SUM(distance_walked), 0)::double precision AS total_distance "+
		"FROM "+quoteIdent(repo.statsTable)+";")
	if err != nil {
		return Totals{}, dataSourceError("sum stats", err)
	}
	sums.Players = totals.Players
	return sums, nil
}

// TopN returns at most n players ordered by the summed metric, highest first. Equal values
// are ordered by playerUID ascending.
func (repo *StatsRepository) TopN(ctx context.Context, metric Metric, n int) ([]RankedRow, error) {
	if !metric.Valid() {
		return nil, dataSourceError("top "+metric.String(), fmt.Errorf("unknown metric %d", int(metric)))
	}
	if n <= 0 {
		n = DefaultTopN
	}
	query, args := repo.topNQuery(metric, n)

	var rows []RankedRow
	err := pgxscan.Select(ctx, repo.conn, &rows, query, args...)
	if err != nil {
		return nil, dataSourceError("top "+metric.String(), err)
	}
	return rows, nil
}

func (repo *StatsRepository) topNQuery(metric Metric, n int) (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString(`SELECT "playerUID" AS player_uid, COALESCE(SUM(`)
	sb.WriteString(metric.Expression())
	sb.WriteString("), 0)::bigint AS value FROM ")
	sb.WriteString(quoteIdent(repo.statsTable))
	if len(repo.ignore) > 0 {
		args = append(args, repo.ignore.Slice())
		sb.WriteString(fmt.Sprintf(` WHERE NOT ("playerUID" = ANY($%d))`, len(args)))
	}
	args = append(args, n)
	sb.WriteString(fmt.Sprintf(` GROUP BY "playerUID" ORDER BY value DESC, "playerUID" ASC LIMIT $%d;`, len(args)))
	return sb.String(), args
}

// PlayerName never fails: a missing row or a failed lookup yields UnknownPlayer.
func (repo *StatsRepository) PlayerName(ctx context.Context, playerUID string) string {
	var name *string
	err := repo.conn.QueryRow(ctx, `SELECT "playerName" FROM `+quoteIdent(repo.playersTable)+` WHERE "playerUID" = $1 LIMIT 1;`, playerUID).Scan(&name)
	if err != nil || name == nil || *name == "" {
		return UnknownPlayer
	}
	return *name
}

func IsDataSourceError(err error) bool {
	var dse *DataSourceError
	return errors.As(err, &dse)
}
