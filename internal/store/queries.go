package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/blogrank/blogrank/internal/blogger"
)

// ListBloggers returns the directory listing: every creator with
// profile fields and the follower total across active platforms,
// newest first. Filtering happens in memory (blogger.Filter); the
// dataset is a few thousand rows at most.
func (s *Store) ListBloggers(ctx context.Context) ([]blogger.Listing, error) {
	rows, err := s.db.Query(ctx,
		`SELECT
			b.id, p.full_name, b.handle,
			COALESCE(p.avatar_url, ''), COALESCE(b.bio, ''), COALESCE(b.gender, ''),
			b.topics, b.post_price, b.story_price,
			b.barter_available, b.mart_available,
			COALESCE(SUM(pl.followers) FILTER (WHERE pl.is_active), 0)::bigint
		 FROM bloggers b
		 JOIN profiles p ON p.id = b.profile_id
		 LEFT JOIN platforms pl ON pl.blogger_id = b.id
		 GROUP BY b.id, p.full_name, p.avatar_url
		 ORDER BY b.created_at DESC, b.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list bloggers: %w", err)
	}
	defer rows.Close()

	var listings []blogger.Listing
	for rows.Next() {
		var l blogger.Listing
		var followers int64
		err := rows.Scan(
			&l.ID, &l.Name, &l.Handle, &l.AvatarURL, &l.Bio, &l.Gender,
			&l.Topics, &l.PostPrice, &l.StoryPrice, &l.Barter, &l.Mart,
			&followers,
		)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		l.Followers = int(followers)
		if l.Topics == nil {
			l.Topics = []string{}
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bloggers: %w", err)
	}
	return listings, nil
}

// GetBloggerByHandle returns the full creator payload for a normalized
// handle, or nil when no record exists.
func (s *Store) GetBloggerByHandle(ctx context.Context, handle string) (*blogger.Detail, error) {
	var d blogger.Detail
	err := s.db.QueryRow(ctx,
		`SELECT
			b.id, b.handle, p.full_name, COALESCE(p.avatar_url, ''),
			COALESCE(b.bio, ''), COALESCE(b.gender, ''),
			b.topics, b.restricted_topics,
			b.post_price, b.story_price,
			b.barter_available, b.mart_available,
			COALESCE(b.work_conditions, '')
		 FROM bloggers b
		 JOIN profiles p ON p.id = b.profile_id
		 WHERE b.handle = $1`,
		handle,
	).Scan(
		&d.ID, &d.Handle, &d.Name, &d.AvatarURL, &d.Bio, &d.Gender,
		&d.Topics, &d.RestrictedTopics, &d.PostPrice, &d.StoryPrice,
		&d.Barter, &d.Mart, &d.WorkConditions,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get blogger by handle: %w", err)
	}

	if err := s.loadPlatforms(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// BloggerByProfile returns the blogger owned by a profile id, or nil.
func (s *Store) BloggerByProfile(ctx context.Context, profileID string) (*blogger.Detail, error) {
	var handle string
	err := s.db.QueryRow(ctx,
		`SELECT handle FROM bloggers WHERE profile_id = $1`, profileID,
	).Scan(&handle)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("blogger by profile: %w", err)
	}
	return s.GetBloggerByHandle(ctx, handle)
}

// loadPlatforms attaches the platform metric rows in a fixed order.
func (s *Store) loadPlatforms(ctx context.Context, d *blogger.Detail) error {
	rows, err := s.db.Query(ctx,
		`SELECT platform_type, followers, engagement_rate, post_reach,
			story_reach, is_active
		 FROM platforms
		 WHERE blogger_id = $1
		 ORDER BY platform_type`,
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("load platforms: %w", err)
	}
	defer rows.Close()

	d.Platforms = []blogger.PlatformDetail{}
	for rows.Next() {
		var p blogger.PlatformDetail
		var kind string
		err := rows.Scan(&kind, &p.Followers, &p.EngagementRate,
			&p.PostReach, &p.StoryReach, &p.IsActive)
		if err != nil {
			return fmt.Errorf("scan platform: %w", err)
		}
		p.Platform = blogger.Platform(kind)
		d.Platforms = append(d.Platforms, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load platforms: %w", err)
	}

	if d.Topics == nil {
		d.Topics = []string{}
	}
	if d.RestrictedTopics == nil {
		d.RestrictedTopics = []string{}
	}
	return nil
}
