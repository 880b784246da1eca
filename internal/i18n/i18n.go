package i18n

import (
	"fmt"
	"strings"
)

// Mode selects which language(s) the learner sees
type Mode string

const (
	English   Mode = "english"
	Urdu      Mode = "urdu"
	Bilingual Mode = "bilingual"
)

// bilingualSeparator joins the English and Urdu halves in bilingual mode
const bilingualSeparator = " / "

// Text is a single piece of content in both languages
type Text struct {
	English string `json:"english"`
	Urdu    string `json:"urdu"`
}

// T returns the string to display for the given mode.
// Bilingual mode shows both halves; if one half is missing the other is shown alone.
func T(text Text, mode Mode) string {
	switch mode {
	case Urdu:
		if text.Urdu == "" {
			return text.English
		}
		return text.Urdu
	case Bilingual:
		if text.Urdu == "" {
			return text.English
		}
		if text.English == "" {
			return text.Urdu
		}
		return text.English + bilingualSeparator + text.Urdu
	default:
		if text.English == "" {
			return text.Urdu
		}
		return text.English
	}
}

// ParseMode converts a flag or environment value into a Mode
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "english", "en":
		return English, nil
	case "urdu", "ur":
		return Urdu, nil
	case "bilingual", "both", "":
		return Bilingual, nil
	default:
		return "", fmt.Errorf("unsupported language mode: %s", value)
	}
}
