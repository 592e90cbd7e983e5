package types

import (
	"time"

	"github.com/google/uuid"
)

// Collection is a named grouping of asset ids per client. Purely
// organizational; the repository keeps it referentially consistent when
// assets are deleted.
type Collection struct {
	ID          uuid.UUID   `json:"id"`
	ClientID    string      `json:"client_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	AssetIDs    []uuid.UUID `json:"asset_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (c *Collection) Contains(id uuid.UUID) bool {
	for _, existing := range c.AssetIDs {
		if existing == id {
			return true
		}
	}
	return false
}
