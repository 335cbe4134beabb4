package locale

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

var killsTitle = &i18n.Message{
	ID:    "report.section.kills.title",
	Other: "**Most Kills**",
}

func TestLoadTranslations(t *testing.T) {
	logger := log.New(io.Discard)

	l := LoadTranslations(logger, "does-not-exist", "en")
	if len(l.Languages()) != 1 {
		t.Error("Shouldn't have loaded more than a single language")
	}

	l = LoadTranslations(logger, "testdata", "en")
	langs := l.Languages()
	if len(langs) != 2 {
		t.Error("Expected 2 languages to be loaded, the default, and testdata/active.de.toml")
	}
	if langs["de"] != "Deutsch" {
		t.Error("Expected the german language name to be read from the locale file, got " + langs["de"])
	}
}

func TestLocalize(t *testing.T) {
	logger := log.New(io.Discard)

	output := English().Localize(killsTitle, nil)
	if output != "**Most Kills**" {
		t.Error("Default message was not used: " + output)
	}

	output = LoadTranslations(logger, "", "de").Localize(killsTitle, nil)
	if output != "**Most Kills**" {
		t.Error("Translation should not succeed if de has not been loaded: " + output)
	}

	de := LoadTranslations(logger, "testdata", "de")
	output = de.Localize(killsTitle, nil)
	if output != "**Meiste Kills**" {
		t.Error("Translation should succeed once de is loaded: " + output)
	}

	output = de.Localize(&i18n.Message{
		ID:    "report.totals.players",
		Other: "**🔸 Total Players:** {{.Value}}",
	}, map[string]interface{}{"Value": "1,234"})
	if output != "**🔸 Spieler gesamt:** 1,234" {
		t.Error("Substitution was not performed properly: " + output)
	}
}
