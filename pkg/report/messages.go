package report

import (
	"github.com/j0nas500/statsembed/pkg/storage"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

var (
	msgLoading = &i18n.Message{
		ID:    "report.loading",
		Other: "Loading...",
	}
	msgLoadingStats = &i18n.Message{
		ID:    "report.loadingStats",
		Other: "Loading stats...",
	}
	msgNoData = &i18n.Message{
		ID:    "report.noData",
		Other: "No Data",
	}

	msgGlobalStats = &i18n.Message{
		ID:    "report.totals.title",
		Other: "**Global Stats**",
	}
	msgTotalPlayers = &i18n.Message{
		ID:    "report.totals.players",
		Other: "**🔸 Total Players:** {{.Value}}",
	}
	msgTotalKills = &i18n.Message{
		ID:    "report.totals.kills",
		Other: "**🔸 Total Player Kills:** {{.Value}}",
	}
	msgTotalDeaths = &i18n.Message{
		ID:    "report.totals.deaths",
		Other: "**🔸 Total Player Deaths:** {{.Value}}",
	}
	msgTotalAIKills = &i18n.Message{
		ID:    "report.totals.aiKills",
		Other: "**🔸 Total AI Kills:** {{.Value}}",
	}
	msgRoundsFired = &i18n.Message{
		ID:    "report.totals.shots",
		Other: "**🔸 Round Fired:** {{.Value}}",
	}
	msgDistance = &i18n.Message{
		ID:    "report.totals.distance",
		Other: "**🔸 Distance Walked:** {{.Value}} Km",
	}
)

type sectionSpec struct {
	title            *i18n.Message
	placeholderTitle *i18n.Message
	caption          *i18n.Message
	label            *i18n.Message
	isTime           bool
}

var (
	labelTime   = &i18n.Message{ID: "report.label.time", Other: "Time"}
	labelKills  = &i18n.Message{ID: "report.label.kills", Other: "Kills"}
	labelDeaths = &i18n.Message{ID: "report.label.deaths", Other: "Deaths"}
	labelPoints = &i18n.Message{ID: "report.label.points", Other: "Points"}
)

var sectionSpecs = map[storage.Metric]sectionSpec{
	storage.Playtime: {
		title:  &i18n.Message{ID: "report.section.playtime.title", Other: "**Most Playtime**"},
		label:  labelTime,
		isTime: true,
	},
	storage.Kills: {
		title: &i18n.Message{ID: "report.section.kills.title", Other: "**Most Kills**"},
		label: labelKills,
	},
	storage.Deaths: {
		title: &i18n.Message{ID: "report.section.deaths.title", Other: "**Most Deaths**"},
		label: labelDeaths,
	},
	storage.Roadkills: {
		title:   &i18n.Message{ID: "report.section.roadkills.title", Other: "**Most Roadkills**"},
		caption: &i18n.Message{ID: "report.section.roadkills.caption", Other: "*Enemies killed with a vehicle*"},
		label:   labelKills,
	},
	storage.Medics: {
		title:   &i18n.Message{ID: "report.section.medics.title", Other: "**Best Medics**"},
		caption: &i18n.Message{ID: "report.section.medics.caption", Other: "*Points for healing Friendlies*"},
		label:   labelPoints,
	},
	storage.BusDrivers: {
		title:            &i18n.Message{ID: "report.section.busDrivers.title", Other: "**Bus Drivers**"},
		placeholderTitle: &i18n.Message{ID: "report.section.busDrivers.placeholderTitle", Other: "**Professional Bus Drivers**"},
		caption:          &i18n.Message{ID: "report.section.busDrivers.caption", Other: "*Points for driving other players*"},
		label:            labelPoints,
	},
}
