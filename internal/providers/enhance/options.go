package enhance

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Quality enumerates supported enhancement quality targets.
type Quality string

const (
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
	QualityUltra    Quality = "ultra"
)

// Style enumerates supported enhancement style presets.
type Style string

const (
	StyleNatural  Style = "natural"
	StyleVivid    Style = "vivid"
	StylePortrait Style = "portrait"
	StyleProduct  Style = "product"
)

var titleCaser = cases.Title(language.English)

// NormalizeQuality sanitizes free-form user input into a supported quality.
func NormalizeQuality(quality string) Quality {
	switch strings.ToLower(strings.TrimSpace(quality)) {
	case string(QualityHigh):
		return QualityHigh
	case string(QualityUltra):
		return QualityUltra
	default:
		return QualityStandard
	}
}

// NormalizeStyle sanitizes free-form user input into a supported style.
func NormalizeStyle(style string) Style {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case string(StyleVivid):
		return StyleVivid
	case string(StylePortrait):
		return StylePortrait
	case string(StyleProduct):
		return StyleProduct
	default:
		return StyleNatural
	}
}

// DisplayName renders the quality for user-facing messages.
func (q Quality) DisplayName() string {
	return titleCaser.String(string(q))
}

// DisplayName renders the style for user-facing messages.
func (s Style) DisplayName() string {
	return titleCaser.String(string(s))
}
