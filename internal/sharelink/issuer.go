package sharelink

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/types"
)

// Options carries the optional restrictions on a link.
type Options struct {
	MaxAccess *int
	Password  string
	CreatedBy string
}

// Issuer creates and resolves ephemeral share links. Exhausted and expired
// links are kept (access refused, record intact) so resolution attempts stay
// auditable.
type Issuer struct {
	log   *logger.Logger
	links map[string]*types.ShareLink
	order []string

	now func() time.Time
}

func NewIssuer(log *logger.Logger) *Issuer {
	return &Issuer{
		log:   log.With("service", "ShareLinkIssuer"),
		links: map[string]*types.ShareLink{},
		now:   time.Now,
	}
}

// Issue creates a link over a snapshot of asset ids. ttl is taken literally:
// a zero ttl produces a link that is already expired when resolved.
func (i *Issuer) Issue(assetIDs []uuid.UUID, ttl time.Duration, opts Options) (*types.ShareLink, error) {
	if len(assetIDs) == 0 {
		return nil, fmt.Errorf("%w: a share link needs at least one asset id", types.ErrValidation)
	}
	if opts.MaxAccess != nil && *opts.MaxAccess <= 0 {
		return nil, fmt.Errorf("%w: max access must be positive when set", types.ErrValidation)
	}

	id, err := newLinkID()
	if err != nil {
		return nil, fmt.Errorf("generate link id: %w", err)
	}

	link := &types.ShareLink{
		ID:        id,
		AssetIDs:  append([]uuid.UUID(nil), assetIDs...),
		CreatedAt: i.now(),
		ExpiresAt: i.now().Add(ttl),
		MaxAccess: opts.MaxAccess,
		CreatedBy: opts.CreatedBy,
	}
	if opts.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash share link password: %w", err)
		}
		link.PasswordHash = string(hash)
	}

	i.links[link.ID] = link
	i.order = append(i.order, link.ID)
	i.log.Info("share link issued",
		"link_id", link.ID,
		"assets", len(link.AssetIDs),
		"expires_at", link.ExpiresAt,
		"protected", link.Protected(),
	)
	return link.Clone(), nil
}

// Resolve checks expiry, then the access budget, then the password, and only
// then consumes one unit of the budget and returns the referenced asset ids.
// Resolution is not idempotent.
func (i *Issuer) Resolve(linkID, password string) ([]uuid.UUID, error) {
	link, ok := i.links[linkID]
	if !ok {
		return nil, fmt.Errorf("share link %q: %w", linkID, types.ErrNotFound)
	}
	if !i.now().Before(link.ExpiresAt) {
		return nil, fmt.Errorf("share link %q: %w", linkID, types.ErrExpired)
	}
	if link.MaxAccess != nil && link.AccessCount >= *link.MaxAccess {
		return nil, fmt.Errorf("share link %q: %w", linkID, types.ErrAccessLimit)
	}
	if link.Protected() {
		if err := bcrypt.CompareHashAndPassword([]byte(link.PasswordHash), []byte(password)); err != nil {
			return nil, fmt.Errorf("share link %q: %w", linkID, types.ErrAuth)
		}
	}
	link.AccessCount++
	return append([]uuid.UUID(nil), link.AssetIDs...), nil
}

// Get returns the link record without consuming access budget.
func (i *Issuer) Get(linkID string) (*types.ShareLink, error) {
	link, ok := i.links[linkID]
	if !ok {
		return nil, fmt.Errorf("share link %q: %w", linkID, types.ErrNotFound)
	}
	return link.Clone(), nil
}

// Links returns every link in issue order, for snapshot persistence.
func (i *Issuer) Links() []*types.ShareLink {
	out := make([]*types.ShareLink, 0, len(i.order))
	for _, id := range i.order {
		if link, ok := i.links[id]; ok {
			out = append(out, link.Clone())
		}
	}
	return out
}

// Restore replaces the issuer state from a persisted snapshot.
func (i *Issuer) Restore(links []*types.ShareLink) {
	i.links = make(map[string]*types.ShareLink, len(links))
	i.order = i.order[:0]
	for _, link := range links {
		if link == nil || link.ID == "" {
			continue
		}
		i.links[link.ID] = link.Clone()
		i.order = append(i.order, link.ID)
	}
}

// newLinkID returns 128 bits of crypto randomness, base64url encoded, so
// links are effectively unique and non-enumerable.
func newLinkID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
