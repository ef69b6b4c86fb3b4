package blogger

import (
	"context"
	"fmt"
)

// OwnProfile is what an authenticated creator sees on their own
// profile page: the account record plus the blogger record, if one has
// been linked to the account.
type OwnProfile struct {
	Profile Profile `json:"profile"`
	Blogger *Detail `json:"blogger,omitempty"`
}

// ProfileUpdate carries the editable profile and blogger fields plus
// per-platform metric upserts. Nil pointers leave fields unchanged.
type ProfileUpdate struct {
	Profile   ProfileFields
	Blogger   BloggerFields
	Platforms map[Platform]PlatformMetric
}

// CreateOne hand-enters a single creator record, the admin-form
// counterpart of the bulk import. It applies the same rules: admin
// credential required, handle normalized before the uniqueness check,
// placeholder owning profile, platform rows only for followers > 0.
// Unlike the import loop, a duplicate handle is a reported error here.
func (s *Service) CreateOne(ctx context.Context, credential string, rec *Record) (*Detail, error) {
	if _, err := s.requireAdmin(ctx, credential); err != nil {
		return nil, err
	}

	if rec.Name == "" || rec.Handle == "" {
		return nil, ErrMissingFields
	}

	handle := NormalizeHandle(rec.Handle)
	_, exists, err := s.store.FindBloggerByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("handle lookup: %w", err)
	}
	if exists {
		return nil, ErrHandleTaken
	}

	if _, err := s.createBlogger(ctx, rec, handle); err != nil {
		return nil, err
	}
	return s.ByHandle(ctx, handle)
}

// OwnProfile returns the profile and linked blogger record for the
// authenticated user. Returns ErrNotFound when the user has no profile.
func (s *Service) OwnProfile(ctx context.Context, userID string) (*OwnProfile, error) {
	profile, err := s.store.ProfileByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	detail, err := s.store.BloggerByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return &OwnProfile{Profile: *profile, Blogger: detail}, nil
}

// UpdateOwnProfile applies a creator's edits to their own profile,
// blogger record, and platform metrics. Platform upserts are marked
// active; later edits through this path are how imported records get
// corrected.
func (s *Service) UpdateOwnProfile(ctx context.Context, userID string, u ProfileUpdate) (*OwnProfile, error) {
	profile, err := s.store.ProfileByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	if u.Profile.FullName != nil || u.Profile.AvatarURL != nil {
		if err := s.store.UpdateProfile(ctx, profile.ID, u.Profile); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	detail, err := s.store.BloggerByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrNotFound
	}

	if err := s.store.UpdateBlogger(ctx, detail.ID, u.Blogger); err != nil {
		return nil, fmt.Errorf("update blogger: %w", err)
	}

	for _, p := range AllPlatforms {
		m, ok := u.Platforms[p]
		if !ok {
			continue
		}
		err := s.store.UpsertPlatform(ctx, NewPlatform{
			BloggerID:      detail.ID,
			Platform:       p,
			Followers:      m.Followers,
			EngagementRate: m.EngagementRate,
			PostReach:      m.PostReach,
			StoryReach:     m.StoryReach,
			IsActive:       true,
		})
		if err != nil {
			return nil, fmt.Errorf("upsert %s platform: %w", p, err)
		}
	}

	return s.OwnProfile(ctx, userID)
}
