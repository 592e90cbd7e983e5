package types

import (
	"time"

	"github.com/google/uuid"
)

type ColorSwatch struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type ColorPalette struct {
	Name      string        `json:"name"`
	Primary   string        `json:"primary"`
	Secondary string        `json:"secondary,omitempty"`
	Accent    string        `json:"accent,omitempty"`
	Swatches  []ColorSwatch `json:"swatches,omitempty"`
}

type FontDefinition struct {
	Family      string   `json:"family"`
	Weights     []int    `json:"weights,omitempty"`
	Styles      []string `json:"styles,omitempty"`
	ForHeadings bool     `json:"for_headings"`
	ForBody     bool     `json:"for_body"`
}

// Guidelines is the per-client rulebook. It is referenced for display only;
// the compliance evaluator runs its own fixed rule set.
type Guidelines struct {
	ID       uuid.UUID `json:"id"`
	ClientID string    `json:"client_id"`
	Name     string    `json:"name"`

	LogoClearSpacePx int `json:"logo_clear_space_px,omitempty"`
	LogoMinSizePx    int `json:"logo_min_size_px,omitempty"`

	Palettes []ColorPalette   `json:"palettes,omitempty"`
	Fonts    []FontDefinition `json:"fonts,omitempty"`

	ProhibitedUses  []string       `json:"prohibited_uses,omitempty"`
	AllowedContexts []UsageContext `json:"allowed_contexts,omitempty"`
	Restrictions    []string       `json:"restrictions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GuidelinesUpdate struct {
	Name             *string           `json:"name,omitempty"`
	LogoClearSpacePx *int              `json:"logo_clear_space_px,omitempty"`
	LogoMinSizePx    *int              `json:"logo_min_size_px,omitempty"`
	Palettes         *[]ColorPalette   `json:"palettes,omitempty"`
	Fonts            *[]FontDefinition `json:"fonts,omitempty"`
	ProhibitedUses   *[]string         `json:"prohibited_uses,omitempty"`
	AllowedContexts  *[]UsageContext   `json:"allowed_contexts,omitempty"`
	Restrictions     *[]string         `json:"restrictions,omitempty"`
}
