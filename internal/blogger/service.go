package blogger

import (
	"context"
	"net/http"
	"time"
)

// Store is the persistence collaborator. Implemented by the pgx-backed
// store in production and by fakes in tests.
type Store interface {
	// FindBloggerByHandle looks up a blogger id by normalized handle.
	// The second return is false when no record exists.
	FindBloggerByHandle(ctx context.Context, handle string) (string, bool, error)

	CreateProfile(ctx context.Context, p NewProfile) (string, error)
	CreateBlogger(ctx context.Context, b NewBlogger) (string, error)
	CreatePlatform(ctx context.Context, p NewPlatform) error

	ListBloggers(ctx context.Context) ([]Listing, error)

	// GetBloggerByHandle returns the full profile payload for a
	// normalized handle, or nil when no record exists.
	GetBloggerByHandle(ctx context.Context, handle string) (*Detail, error)

	// ProfileByUser returns the profile owned by a user id, or nil.
	ProfileByUser(ctx context.Context, userID string) (*Profile, error)

	// BloggerByProfile returns the blogger owned by a profile id, or nil.
	BloggerByProfile(ctx context.Context, profileID string) (*Detail, error)

	UpdateProfile(ctx context.Context, profileID string, u ProfileFields) error
	UpdateBlogger(ctx context.Context, bloggerID string, u BloggerFields) error
	UpsertPlatform(ctx context.Context, p NewPlatform) error
}

// CredentialVerifier resolves a bearer credential to a user id.
// Implemented by the JWT verifier in internal/auth.
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// Profile is a persisted account record.
type Profile struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
}

// PlatformDetail is a persisted platform metric row.
type PlatformDetail struct {
	Platform       Platform `json:"platform_type"`
	Followers      int      `json:"followers"`
	EngagementRate float64  `json:"engagement_rate"`
	PostReach      int      `json:"post_reach"`
	StoryReach     int      `json:"story_reach"`
	IsActive       bool     `json:"is_active"`
}

// Detail is the full creator payload used by the profile page and the
// profile-management surface.
type Detail struct {
	ID               string           `json:"id"`
	Handle           string           `json:"handle"`
	Name             string           `json:"name"`
	AvatarURL        string           `json:"avatar_url,omitempty"`
	Bio              string           `json:"bio,omitempty"`
	Gender           string           `json:"gender,omitempty"`
	Topics           []string         `json:"topics"`
	RestrictedTopics []string         `json:"restricted_topics"`
	PostPrice        *float64         `json:"post_price"`
	StoryPrice       *float64         `json:"story_price"`
	Barter           bool             `json:"barter_available"`
	Mart             bool             `json:"mart_available"`
	WorkConditions   string           `json:"work_conditions,omitempty"`
	Platforms        []PlatformDetail `json:"platforms"`
}

// ProfileFields are the profile attributes a creator may edit.
// Nil pointers leave the column unchanged.
type ProfileFields struct {
	FullName  *string
	AvatarURL *string
}

// BloggerFields are the blogger attributes a creator may edit.
// Nil pointers and nil slices leave the column unchanged.
type BloggerFields struct {
	Bio              *string
	Gender           *string
	Topics           []string
	RestrictedTopics []string
	PostPrice        *float64
	StoryPrice       *float64
	Barter           *bool
	Mart             *bool
	WorkConditions   *string
}

// Service implements the directory operations: bulk import, directory
// listing, per-creator lookup, and profile management.
type Service struct {
	store  Store
	creds  CredentialVerifier
	client *http.Client
}

// NewService creates a Service. A nil client falls back to a default
// HTTP client with a sane timeout for spreadsheet fetches.
func NewService(store Store, creds CredentialVerifier, client *http.Client) *Service {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Service{store: store, creds: creds, client: client}
}

// requireAdmin verifies the credential and checks the stored role.
// Returns ErrUnauthorized for a missing or invalid credential and
// ErrForbidden when the resolved user is not an administrator.
func (s *Service) requireAdmin(ctx context.Context, credential string) (string, error) {
	if credential == "" {
		return "", ErrUnauthorized
	}

	userID, err := s.creds.Verify(ctx, credential)
	if err != nil {
		return "", ErrUnauthorized
	}

	profile, err := s.store.ProfileByUser(ctx, userID)
	if err != nil || profile == nil || profile.Role != RoleAdmin {
		return "", ErrForbidden
	}
	return userID, nil
}

// Directory returns the filtered directory listing in stored order.
func (s *Service) Directory(ctx context.Context, c Criteria) ([]Listing, error) {
	listings, err := s.store.ListBloggers(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(listings, c), nil
}

// ByHandle returns the creator profile payload for a handle. The
// lookup normalizes the handle first, so both "name" and "@name"
// resolve to the same record. Returns ErrNotFound for unknown handles.
func (s *Service) ByHandle(ctx context.Context, handle string) (*Detail, error) {
	detail, err := s.store.GetBloggerByHandle(ctx, NormalizeHandle(handle))
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrNotFound
	}
	return detail, nil
}
