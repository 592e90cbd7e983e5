package compliance

import (
	"fmt"
	"strings"

	"github.com/brandvault/brandvault-backend/internal/types"
)

// Result is the outcome of evaluating one asset. Issues from warning/info
// rules are reported but do not flip IsCompliant; only error-severity issues
// do.
type Result struct {
	IsCompliant bool
	Issues      []string
}

// Evaluate scores a single asset against the static rule list. It is pure
// and deterministic: no state, no clock, no side effects. Callers decide what
// to do with the result.
func Evaluate(a *types.Asset) Result {
	res := Result{IsCompliant: true}
	if a == nil {
		return res
	}
	for _, rule := range defaultRules {
		if !rule.appliesTo(a.Type) {
			continue
		}
		issue := apply(rule, a)
		if issue == "" {
			continue
		}
		res.Issues = append(res.Issues, fmt.Sprintf("[%s] %s: %s", rule.Severity, rule.ID, issue))
		if rule.Severity == SeverityError {
			res.IsCompliant = false
		}
	}
	return res
}

func apply(rule Rule, a *types.Asset) string {
	switch check := rule.Check.(type) {
	case FileFormatCheck:
		format := strings.ToLower(strings.TrimSpace(a.Format))
		for _, allowed := range check.Formats {
			if format == allowed {
				return ""
			}
		}
		return fmt.Sprintf("format %q is not one of %s", a.Format, strings.Join(check.Formats, "/"))
	case DimensionsCheck:
		// Assets without dimensions (fonts, palettes, unknown) pass.
		if a.Dimensions == nil {
			return ""
		}
		if a.Dimensions.Width < check.MinWidth || a.Dimensions.Height < check.MinHeight {
			return fmt.Sprintf("dimensions %dx%d below minimum %dx%d",
				a.Dimensions.Width, a.Dimensions.Height, check.MinWidth, check.MinHeight)
		}
		return ""
	case FileSizeCheck:
		if a.FileSize > check.MaxBytes {
			return fmt.Sprintf("file size %d exceeds maximum %d bytes", a.FileSize, check.MaxBytes)
		}
		return ""
	case NamingCheck:
		name := strings.TrimSpace(a.Name)
		if name == "" || !check.Pattern.MatchString(name) {
			return fmt.Sprintf("name %q does not follow convention (%s)", a.Name, check.Description)
		}
		return ""
	case MetadataCheck:
		var missing []string
		if check.RequireDescription && strings.TrimSpace(a.Description) == "" {
			missing = append(missing, "description")
		}
		if check.RequireTags && len(a.Tags) == 0 {
			missing = append(missing, "tags")
		}
		if len(missing) == 0 {
			return ""
		}
		return "missing " + strings.Join(missing, " and ")
	default:
		return ""
	}
}
