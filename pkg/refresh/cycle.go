package refresh

import (
	"context"
	"time"

	"github.com/j0nas500/statsembed/pkg/leaderboard"
	"github.com/j0nas500/statsembed/pkg/report"
	"github.com/j0nas500/statsembed/pkg/storage"
	"golang.org/x/sync/errgroup"
)

// maxNameLookups bounds the concurrent player name queries of one cycle.
const maxNameLookups = 8

// Source is the read side of one cycle.
type Source interface {
	Totals(ctx context.Context) (storage.Totals, error)
	TopN(ctx context.Context, metric storage.Metric, n int) ([]storage.RankedRow, error)
	PlayerName(ctx context.Context, playerUID string) string
}

// Collect fetches the totals and every leaderboard concurrently and resolves the names of
// all ranked players. Any query failure fails the whole collection; name lookups never do.
func Collect(ctx context.Context, src Source, n int, now time.Time) (report.Data, error) {
	var (
		totals storage.Totals
		rows   = make([][]storage.RankedRow, len(storage.AllMetrics))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := src.Totals(gctx)
		totals = t
		return err
	})
	for i, metric := range storage.AllMetrics {
		i, metric := i, metric
		g.Go(func() error {
			r, err := src.TopN(gctx, metric, n)
			rows[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return report.Data{}, err
	}

	names := lookupNames(ctx, src, rows)

	boards := make(map[storage.Metric][]leaderboard.Entry, len(storage.AllMetrics))
	for i, metric := range storage.AllMetrics {
		entries := make([]leaderboard.Entry, 0, len(rows[i]))
		for rank, row := range rows[i] {
			entries = append(entries, leaderboard.Entry{
				Rank:       rank + 1,
				PlayerUID:  row.PlayerUID,
				PlayerName: names[row.PlayerUID],
				Value:      row.Value,
			})
		}
		boards[metric] = entries
	}
	return report.Data{Totals: totals, Boards: boards, GeneratedAt: now}, nil
}

// lookupNames queries each distinct player once.
func lookupNames(ctx context.Context, src Source, rows [][]storage.RankedRow) map[string]string {
	var uids []string
	seen := map[string]bool{}
	for _, board := range rows {
		for _, row := range board {
			if !seen[row.PlayerUID] {
				seen[row.PlayerUID] = true
				uids = append(uids, row.PlayerUID)
			}
		}
	}

	resolved := make([]string, len(uids))
	var g errgroup.Group
	g.SetLimit(maxNameLookups)
	for i, uid := range uids {
		i, uid := i, uid
		g.Go(func() error {
			resolved[i] = src.PlayerName(ctx, uid)
			return nil
		})
	}
	_ = g.Wait()

	names := make(map[string]string, len(uids))
	for i, uid := range uids {
		names[uid] = resolved[i]
	}
	return names
}
