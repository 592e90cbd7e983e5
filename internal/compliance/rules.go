package compliance

import (
	"regexp"

	"github.com/brandvault/brandvault-backend/internal/types"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Check is the tagged payload of a rule: exactly one concrete kind per rule,
// matched exhaustively in the evaluator.
type Check interface {
	isCheck()
}

type FileFormatCheck struct {
	Formats []string
}

type DimensionsCheck struct {
	MinWidth  int
	MinHeight int
}

type FileSizeCheck struct {
	MaxBytes int64
}

type NamingCheck struct {
	Pattern     *regexp.Regexp
	Description string
}

type MetadataCheck struct {
	RequireDescription bool
	RequireTags        bool
}

func (FileFormatCheck) isCheck() {}
func (DimensionsCheck) isCheck() {}
func (FileSizeCheck) isCheck()   {}
func (NamingCheck) isCheck()     {}
func (MetadataCheck) isCheck()   {}

type Rule struct {
	ID        string
	AppliesTo []types.AssetType
	Severity  Severity
	Check     Check
}

func (r Rule) appliesTo(t types.AssetType) bool {
	if len(r.AppliesTo) == 0 {
		return true
	}
	for _, at := range r.AppliesTo {
		if at == t {
			return true
		}
	}
	return false
}

var kebabName = regexp.MustCompile(`^[a-z0-9]+([ _-][a-z0-9&]+)*$`)

// defaultRules is the engine-owned rule list. It is static: rules are not
// user data and never come from the per-client guidelines.
var defaultRules = []Rule{
	{
		ID:        "logo-vector-format",
		AppliesTo: []types.AssetType{types.AssetTypeLogo, types.AssetTypeIcon},
		Severity:  SeverityWarning,
		Check:     FileFormatCheck{Formats: []string{"svg", "eps", "png"}},
	},
	{
		ID:        "logo-min-dimensions",
		AppliesTo: []types.AssetType{types.AssetTypeLogo},
		Severity:  SeverityWarning,
		Check:     DimensionsCheck{MinWidth: 512, MinHeight: 512},
	},
	{
		ID:        "image-min-dimensions",
		AppliesTo: []types.AssetType{types.AssetTypeImage, types.AssetTypeTemplate},
		Severity:  SeverityInfo,
		Check:     DimensionsCheck{MinWidth: 1024, MinHeight: 768},
	},
	{
		ID:       "max-file-size",
		Severity: SeverityError,
		Check:    FileSizeCheck{MaxBytes: 250 << 20},
	},
	{
		ID:       "naming-convention",
		Severity: SeverityWarning,
		Check: NamingCheck{
			Pattern:     kebabName,
			Description: "lowercase words separated by dash, underscore or space",
		},
	},
	{
		ID:       "metadata-completeness",
		Severity: SeverityInfo,
		Check:    MetadataCheck{RequireDescription: true, RequireTags: true},
	},
}

// Rules returns the static rule list. Callers must not mutate it.
func Rules() []Rule { return defaultRules }
