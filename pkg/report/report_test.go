package report

import (
	"strings"
	"testing"
	"time"

	"github.com/j0nas500/statsembed/pkg/leaderboard"
	"github.com/j0nas500/statsembed/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() Data {
	return Data{
		Totals: storage.Totals{
			Players:        1234,
			Kills:          56789,
			Deaths:         4321,
			AIKills:        100000,
			Shots:          9876543,
			DistanceMeters: 1234567.891,
		},
		Boards: map[storage.Metric][]leaderboard.Entry{
			storage.Playtime: {
				{Rank: 1, PlayerUID: "A", PlayerName: "Alice", Value: 360000},
			},
			storage.Kills: {
				{Rank: 1, PlayerUID: "B", PlayerName: "Bob", Value: 30},
				{Rank: 2, PlayerUID: "C", PlayerName: "Carol", Value: 20},
			},
			storage.Medics: {
				{Rank: 1, PlayerUID: "A", PlayerName: "Alice", Value: 1500},
			},
		},
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderer_full(t *testing.T) {
	r := NewRenderer(DefaultDecoration(), nil)
	rep := r.Full(sampleData())

	assert.Equal(t, DefaultTitle, rep.Title)
	assert.Equal(t, DefaultColor, rep.Color)
	assert.False(t, rep.IsPlaceholder())

	assert.Equal(t, "**Global Stats**\n---------------\n"+
		"**🔸 Total Players:** 1,234\n"+
		"**🔸 Total Player Kills:** 56,789\n"+
		"**🔸 Total Player Deaths:** 4,321\n"+
		"**🔸 Total AI Kills:** 100,000\n"+
		"**🔸 Round Fired:** 9,876,543\n"+
		"**🔸 Distance Walked:** 1234.57 Km\n", rep.Description)

	require.Len(t, rep.Sections, 6)
	assert.Equal(t, Section{"**Most Playtime**", "**#1** - Time: 100:00:00 - Alice"}, rep.Sections[0])
	assert.Equal(t, Section{"**Most Kills**", "**#1** - Kills: 30 - Bob\n**#2** - Kills: 20 - Carol"}, rep.Sections[1])
	assert.Equal(t, Section{"**Most Deaths**", "No Data"}, rep.Sections[2])
	assert.Equal(t, Section{"**Most Roadkills**", "*Enemies killed with a vehicle*\nNo Data"}, rep.Sections[3])
	assert.Equal(t, Section{"**Best Medics**", "*Points for healing Friendlies*\n**#1** - Points: 1,500 - Alice"}, rep.Sections[4])
	assert.Equal(t, Section{"**Bus Drivers**", "*Points for driving other players*\nNo Data"}, rep.Sections[5])
}

func TestRenderer_emptyKillsIsNoData(t *testing.T) {
	rep := NewRenderer(Decoration{}, nil).Full(Data{})
	assert.Equal(t, "No Data", rep.Sections[1].Body)
	assert.Equal(t, "**Most Kills**", rep.Sections[1].Title)
}

func TestRenderer_placeholder(t *testing.T) {
	rep := NewRenderer(Decoration{Title: "Server Stats"}, nil).Placeholder()

	assert.True(t, rep.IsPlaceholder())
	assert.Equal(t, "Server Stats", rep.Title)
	assert.Equal(t, "Loading stats...", rep.Description)
	require.Len(t, rep.Sections, 6)
	for _, s := range rep.Sections {
		assert.Equal(t, "Loading...", s.Body)
	}
	assert.Equal(t, "**Professional Bus Drivers**", rep.Sections[5].Title)
}

func TestRenderer_decoration(t *testing.T) {
	rep := NewRenderer(Decoration{
		Title:        "Top Players",
		Color:        0x00FF00,
		Footer:       "Updated every 5 minutes",
		Thumbnail:    true,
		ThumbnailURL: "https://example.com/logo.png",
	}, nil).Full(sampleData())

	assert.Equal(t, "Top Players", rep.Title)
	assert.Equal(t, 0x00FF00, rep.Color)
	assert.Equal(t, "Updated every 5 minutes", rep.Footer)
	assert.Equal(t, "https://example.com/logo.png", rep.ThumbnailURL)

	// the thumbnail needs both the flag and the url
	rep = NewRenderer(Decoration{ThumbnailURL: "https://example.com/logo.png"}, nil).Full(sampleData())
	assert.Empty(t, rep.ThumbnailURL)
	rep = NewRenderer(Decoration{Thumbnail: true}, nil).Full(sampleData())
	assert.Empty(t, rep.ThumbnailURL)
}

func TestRenderer_blackIsNotReplaced(t *testing.T) {
	black, err := ParseColor("#000000")
	require.NoError(t, err)
	rep := NewRenderer(Decoration{Color: black}, nil).Placeholder()
	assert.Equal(t, 0, rep.Color)
	assert.Equal(t, 0, rep.Embed().Color)
	assert.Equal(t, DefaultTitle, rep.Title)
}

func TestReport_embed(t *testing.T) {
	decoration := DefaultDecoration()
	decoration.Footer = "footer"
	decoration.Thumbnail = true
	decoration.ThumbnailURL = "https://example.com/t.png"
	rep := NewRenderer(decoration, nil).Full(sampleData())
	embed := rep.Embed()

	assert.Equal(t, DefaultTitle, embed.Title)
	assert.Equal(t, DefaultColor, embed.Color)
	assert.Equal(t, "2024-05-01T12:00:00Z", embed.Timestamp)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "footer", embed.Footer.Text)
	require.NotNil(t, embed.Thumbnail)
	assert.Equal(t, "https://example.com/t.png", embed.Thumbnail.URL)

	require.Len(t, embed.Fields, 7)
	assert.Equal(t, "**Most Deaths**", embed.Fields[2].Name)
	assert.Equal(t, "\u200B", embed.Fields[3].Name)
	assert.Equal(t, "\u200B", embed.Fields[3].Value)
	assert.False(t, embed.Fields[3].Inline)
	for i, f := range embed.Fields {
		if i != 3 {
			assert.True(t, f.Inline, f.Name)
		}
		assert.NotEmpty(t, f.Value)
	}

	placeholder := NewRenderer(Decoration{}, nil).Placeholder().Embed()
	assert.Empty(t, placeholder.Timestamp)
	assert.Nil(t, placeholder.Footer)
	assert.Nil(t, placeholder.Thumbnail)
}

func TestRenderer_doesNotShareSections(t *testing.T) {
	r := NewRenderer(Decoration{}, nil)
	a := r.Full(sampleData())
	b := r.Full(Data{})
	assert.NotEqual(t, a.Sections[1].Body, b.Sections[1].Body)
	assert.True(t, strings.HasPrefix(a.Sections[1].Body, "**#1**"))
}

func TestParseColor(t *testing.T) {
	cases := map[string]int{
		"":         DefaultColor,
		"#FFA500":  0xFFA500,
		"#ffa500":  0xFFA500,
		"FFA500":   0xFFA500,
		"0x00ff00": 0x00FF00,
		"3066993":  3066993,
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"#GGGGGG", "orange", "#1FFFFFF", "99999999"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
