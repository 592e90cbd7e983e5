package types

// Settings is the persisted slice of engine configuration. Storage
// credentials and session state are deliberately not here; they are
// session-only and never serialized.
type Settings struct {
	Origin          string         `json:"origin,omitempty" yaml:"origin"`
	DefaultClientID string         `json:"default_client_id,omitempty" yaml:"default_client_id"`
	DefaultContexts []UsageContext `json:"default_contexts,omitempty" yaml:"default_contexts"`
}

type SortKey string

const (
	SortByName  SortKey = "name"
	SortByDate  SortKey = "date"
	SortByUsage SortKey = "usage"
	SortByType  SortKey = "type"
	SortBySize  SortKey = "size"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterCriteria compose by logical AND; empty fields are ignored. Tags and
// Contexts match any-of within themselves. Query delegates to full-text
// search over name/description/tags/type/variant.
type FilterCriteria struct {
	ClientID string         `json:"client_id,omitempty" form:"client_id"`
	Types    []AssetType    `json:"types,omitempty" form:"types"`
	Variants []string       `json:"variants,omitempty" form:"variants"`
	Formats  []string       `json:"formats,omitempty" form:"formats"`
	Approved *bool          `json:"approved,omitempty" form:"approved"`
	Primary  *bool          `json:"primary,omitempty" form:"primary"`
	Tags     []string       `json:"tags,omitempty" form:"tags"`
	Contexts []UsageContext `json:"contexts,omitempty" form:"contexts"`
	Query    string         `json:"query,omitempty" form:"query"`
}

func (c FilterCriteria) Empty() bool {
	return c.ClientID == "" && len(c.Types) == 0 && len(c.Variants) == 0 &&
		len(c.Formats) == 0 && c.Approved == nil && c.Primary == nil &&
		len(c.Tags) == 0 && len(c.Contexts) == 0 && c.Query == ""
}
