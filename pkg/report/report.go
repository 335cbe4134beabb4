// Package report composes totals, leaderboard sections and decoration into the single
// embed that is shown on the surface.
package report

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/j0nas500/statsembed/pkg/leaderboard"
	"github.com/j0nas500/statsembed/pkg/locale"
	"github.com/j0nas500/statsembed/pkg/storage"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

const (
	DefaultTitle = "Stats Leaderboard"
	spacer       = "\u200B"
)

// Decoration is the configurable chrome around the report.
type Decoration struct {
	Title        string
	Color        int
	Footer       string
	Thumbnail    bool
	ThumbnailURL string
}

type Section struct {
	Title string
	Body  string
}

// Report is a fully rendered, immutable snapshot. A zero Timestamp marks a placeholder.
type Report struct {
	Title        string
	Description  string
	Color        int
	Footer       string
	ThumbnailURL string
	Sections     []Section
	Timestamp    time.Time
}

// Data is everything one cycle fetched.
type Data struct {
	Totals      storage.Totals
	Boards      map[storage.Metric][]leaderboard.Entry
	GeneratedAt time.Time
}

type Renderer struct {
	decoration Decoration
	loc        *locale.Localizer
}

// DefaultDecoration is the chrome used when nothing is configured.
func DefaultDecoration() Decoration {
	return Decoration{Title: DefaultTitle, Color: DefaultColor}
}

// NewRenderer uses decoration as given; only an empty title falls back to DefaultTitle.
func NewRenderer(decoration Decoration, loc *locale.Localizer) *Renderer {
	if decoration.Title == "" {
		decoration.Title = DefaultTitle
	}
	if loc == nil {
		loc = locale.English()
	}
	return &Renderer{decoration: decoration, loc: loc}
}

// Placeholder is posted once, when the surface message is first created.
func (r *Renderer) Placeholder() Report {
	loading := r.loc.Localize(msgLoading, nil)
	sections := make([]Section, 0, len(storage.AllMetrics))
	for _, m := range storage.AllMetrics {
		spec := sectionSpecs[m]
		title := spec.title
		if spec.placeholderTitle != nil {
			title = spec.placeholderTitle
		}
		sections = append(sections, Section{
			Title: r.loc.Localize(title, nil),
			Body:  loading,
		})
	}
	return r.decorate(Report{
		Description: r.loc.Localize(msgLoadingStats, nil),
		Sections:    sections,
	})
}

func (r *Renderer) Full(data Data) Report {
	noData := r.loc.Localize(msgNoData, nil)
	sections := make([]Section, 0, len(storage.AllMetrics))
	for _, m := range storage.AllMetrics {
		spec := sectionSpecs[m]
		body := leaderboard.FormatSection(data.Boards[m], r.loc.Localize(spec.label, nil), spec.isTime)
		if body == "" {
			body = noData
		}
		if spec.caption != nil {
			body = r.loc.Localize(spec.caption, nil) + "\n" + body
		}
		sections = append(sections, Section{
			Title: r.loc.Localize(spec.title, nil),
			Body:  body,
		})
	}
	generated := data.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	return r.decorate(Report{
		Description: r.totalsDescription(data.Totals),
		Sections:    sections,
		Timestamp:   generated,
	})
}

func (r *Renderer) decorate(rep Report) Report {
	rep.Title = r.decoration.Title
	rep.Color = r.decoration.Color
	rep.Footer = r.decoration.Footer
	if r.decoration.Thumbnail && r.decoration.ThumbnailURL != "" {
		rep.ThumbnailURL = r.decoration.ThumbnailURL
	}
	return rep
}

func (r *Renderer) totalsDescription(t storage.Totals) string {
	line := func(msg *i18n.Message, value string) string {
		return r.loc.Localize(msg, map[string]interface{}{"Value": value}) + "\n"
	}
	return r.loc.Localize(msgGlobalStats, nil) + "\n" +
		"---------------\n" +
		line(msgTotalPlayers, leaderboard.FormatInteger(t.Players)) +
		line(msgTotalKills, leaderboard.FormatInteger(t.Kills)) +
		line(msgTotalDeaths, leaderboard.FormatInteger(t.Deaths)) +
		line(msgTotalAIKills, leaderboard.FormatInteger(t.AIKills)) +
		line(msgRoundsFired, leaderboard.FormatInteger(t.Shots)) +
		line(msgDistance, leaderboard.FormatKilometers(t.DistanceMeters))
}

// Embed converts the report into the Discord payload. A blank spacer field separates the
// first three sections from the last three.
func (rep Report) Embed() *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(rep.Sections)+1)
	for i, s := range rep.Sections {
		if i == 3 {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   spacer,
				Value:  spacer,
				Inline: false,
			})
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   s.Title,
			Value:  s.Body,
			Inline: true,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       rep.Title,
		Description: rep.Description,
		Color:       rep.Color,
		Fields:      fields,
	}
	if !rep.IsPlaceholder() {
		embed.Timestamp = rep.Timestamp.UTC().Format(time.RFC3339)
	}
	if rep.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: rep.Footer}
	}
	if rep.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: rep.ThumbnailURL}
	}
	return embed
}

func (rep Report) IsPlaceholder() bool {
	return rep.Timestamp.IsZero()
}
