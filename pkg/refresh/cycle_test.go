package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/j0nas500/statsembed/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	src := newFakeSource()
	src.rows[storage.Medics] = []storage.RankedRow{{PlayerUID: "Z", Value: 4}}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	data, err := Collect(context.Background(), src, 2, now)
	require.NoError(t, err)

	assert.Equal(t, now, data.GeneratedAt)
	assert.EqualValues(t, 60, data.Totals.Kills)
	require.Len(t, data.Boards[storage.Kills], 2)
	assert.Equal(t, 1, data.Boards[storage.Kills][0].Rank)
	assert.Equal(t, "Bob", data.Boards[storage.Kills][0].PlayerName)
	assert.Equal(t, 2, data.Boards[storage.Kills][1].Rank)
	assert.Equal(t, storage.UnknownPlayer, data.Boards[storage.Medics][0].PlayerName)
	assert.Empty(t, data.Boards[storage.Roadkills])
	assert.Len(t, data.Boards, len(storage.AllMetrics))
}

func TestCollect_looksUpEachPlayerOnce(t *testing.T) {
	src := newFakeSource()
	_, err := Collect(context.Background(), src, 5, time.Now())
	require.NoError(t, err)

	// A appears in kills and deaths, C in kills and playtime
	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1}, src.lookups)
}

func TestCollect_anyQueryFailureFailsCollection(t *testing.T) {
	src := newFakeSource()
	src.setFailure(storage.Kills, errors.New("relation does not exist"))

	_, err := Collect(context.Background(), src, 5, time.Now())
	require.Error(t, err)
	assert.True(t, storage.IsDataSourceError(err))
	assert.Empty(t, src.lookups, "names are not resolved for an abandoned cycle")
}
