package leaderboard

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInteger(t *testing.T) {
	cases := map[int64]string{
		0:          "0",
		7:          "7",
		999:        "999",
		1000:       "1,000",
		65536:      "65,536",
		1234567:    "1,234,567",
		1000000000: "1,000,000,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatInteger(in), "input %d", in)
	}
}

func TestFormatInteger_grouping(t *testing.T) {
	for _, n := range []int64{1, 12, 123, 1234, 12345, 123456, 9876543210} {
		out := FormatInteger(n)
		groups := strings.Split(out, ",")
		if len(groups[0]) < 1 || len(groups[0]) > 3 {
			t.Errorf("leading group of %s should have 1-3 digits", out)
		}
		for _, g := range groups[1:] {
			if len(g) != 3 {
				t.Errorf("inner group %q of %s should have 3 digits", g, out)
			}
		}
		assert.Equal(t, fmt.Sprintf("%d", n), strings.ReplaceAll(out, ",", ""))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDuration(0))
	assert.Equal(t, "00:00:59", FormatDuration(59))
	assert.Equal(t, "00:01:00", FormatDuration(60))
	assert.Equal(t, "01:01:01", FormatDuration(3661))
	assert.Equal(t, "99:59:59", FormatDuration(359999))
	assert.Equal(t, "100:00:00", FormatDuration(360000))
	assert.Equal(t, "1234:05:06", FormatDuration(1234*3600+5*60+6))
	assert.Equal(t, "00:00:00", FormatDuration(-5))
}

func parseHMS(t *testing.T, s string) int64 {
	var h, m, sec int64
	_, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	if err != nil {
		t.Fatalf("could not parse %q: %v", s, err)
	}
	return h*3600 + m*60 + sec
}

func TestFormatDuration_roundTrip(t *testing.T) {
	for d := int64(0); d < 359999; d += 997 {
		assert.Equal(t, d, parseHMS(t, FormatDuration(d)))
	}
	for _, d := range []int64{359999, 360000, 3600 * 1000, 3600*12345 + 59} {
		assert.Equal(t, d, parseHMS(t, FormatDuration(d)))
	}
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t, "**#1** - Kills: 1,500 - Alice", FormatLine(1, "Kills", "1,500", "Alice"))
}

func TestFormatSection(t *testing.T) {
	assert.Equal(t, "", FormatSection(nil, "Kills", false))
	assert.Equal(t, "", FormatSection([]Entry{}, "Time", true))

	entries := []Entry{
		{PlayerUID: "B", PlayerName: "Bob", Value: 3000},
		{PlayerUID: "C", PlayerName: "Unknown", Value: 20},
	}
	assert.Equal(t, "**#1** - Kills: 3,000 - Bob\n**#2** - Kills: 20 - Unknown",
		FormatSection(entries, "Kills", false))
	assert.Equal(t, "**#1** - Time: 00:50:00 - Bob\n**#2** - Time: 00:00:20 - Unknown",
		FormatSection(entries, "Time", true))
}

func TestFormatKilometers(t *testing.T) {
	assert.Equal(t, "0.00", FormatKilometers(0))
	assert.Equal(t, "123.46", FormatKilometers(123456.7))
}
