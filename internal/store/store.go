// Package store persists creator, profile, and platform records in
// PostgreSQL. All queries go through the DBTX interface so the pool
// and transactions are interchangeable. The schema lives in
// schema.sql next to this file.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogrank/blogrank/internal/blogger"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store is the pgx-backed implementation of blogger.Store.
type Store struct {
	pool *pgxpool.Pool
	db   DBTX
}

// New creates a Store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// FindBloggerByHandle looks up a blogger id by normalized handle.
func (s *Store) FindBloggerByHandle(ctx context.Context, handle string) (string, bool, error) {
	var id string
	err := s.db.QueryRow(ctx,
		`SELECT id FROM bloggers WHERE handle = $1`, handle,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find blogger by handle: %w", err)
	}
	return id, true, nil
}

// CreateProfile inserts a profile row and returns its id.
func (s *Store) CreateProfile(ctx context.Context, p blogger.NewProfile) (string, error) {
	var id string
	err := s.db.QueryRow(ctx,
		`INSERT INTO profiles (user_id, email, full_name, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		p.UserID, p.Email, p.FullName, p.Role,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create profile: %w", err)
	}
	return id, nil
}

// CreateBlogger inserts a blogger row and returns its id.
func (s *Store) CreateBlogger(ctx context.Context, b blogger.NewBlogger) (string, error) {
	var id string
	err := s.db.QueryRow(ctx,
		`INSERT INTO bloggers (
			profile_id, handle, bio, gender, topics, restricted_topics,
			post_price, story_price, barter_available, mart_available,
			work_conditions
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		b.ProfileID, b.Handle, b.Bio, b.Gender,
		textArray(b.Topics), textArray(b.RestrictedTopics),
		b.PostPrice, b.StoryPrice, b.BarterAvailable, b.MartAvailable,
		b.WorkConditions,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create blogger: %w", err)
	}
	return id, nil
}

// CreatePlatform inserts a platform metric row.
func (s *Store) CreatePlatform(ctx context.Context, p blogger.NewPlatform) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO platforms (
			blogger_id, platform_type, followers, engagement_rate,
			post_reach, story_reach, is_active
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.BloggerID, string(p.Platform), p.Followers, p.EngagementRate,
		p.PostReach, p.StoryReach, p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("create platform: %w", err)
	}
	return nil
}

// UpsertPlatform inserts or replaces the metric for one platform.
func (s *Store) UpsertPlatform(ctx context.Context, p blogger.NewPlatform) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO platforms (
			blogger_id, platform_type, followers, engagement_rate,
			post_reach, story_reach, is_active
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (blogger_id, platform_type) DO UPDATE SET
			followers = EXCLUDED.followers,
			engagement_rate = EXCLUDED.engagement_rate,
			post_reach = EXCLUDED.post_reach,
			story_reach = EXCLUDED.story_reach,
			is_active = EXCLUDED.is_active`,
		p.BloggerID, string(p.Platform), p.Followers, p.EngagementRate,
		p.PostReach, p.StoryReach, p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("upsert platform: %w", err)
	}
	return nil
}

// ProfileByUser returns the profile owned by a user id, or nil.
func (s *Store) ProfileByUser(ctx context.Context, userID string) (*blogger.Profile, error) {
	var p blogger.Profile
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, email, full_name, COALESCE(avatar_url, ''), role
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.Email, &p.FullName, &p.AvatarURL, &p.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile by user: %w", err)
	}
	return &p, nil
}

// UpdateProfile applies the editable profile fields.
func (s *Store) UpdateProfile(ctx context.Context, profileID string, u blogger.ProfileFields) error {
	_, err := s.db.Exec(ctx,
		`UPDATE profiles SET
			full_name = COALESCE($2, full_name),
			avatar_url = COALESCE($3, avatar_url),
			updated_at = now()
		 WHERE id = $1`,
		profileID, u.FullName, u.AvatarURL,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// UpdateBlogger applies the editable blogger fields. Nil pointers and
// nil slices leave columns unchanged.
func (s *Store) UpdateBlogger(ctx context.Context, bloggerID string, u blogger.BloggerFields) error {
	_, err := s.db.Exec(ctx,
		`UPDATE bloggers SET
			bio = COALESCE($2, bio),
			gender = COALESCE($3, gender),
			topics = COALESCE($4, topics),
			restricted_topics = COALESCE($5, restricted_topics),
			post_price = COALESCE($6, post_price),
			story_price = COALESCE($7, story_price),
			barter_available = COALESCE($8, barter_available),
			mart_available = COALESCE($9, mart_available),
			work_conditions = COALESCE($10, work_conditions),
			updated_at = now()
		 WHERE id = $1`,
		bloggerID, u.Bio, u.Gender,
		textArrayOrNil(u.Topics), textArrayOrNil(u.RestrictedTopics),
		u.PostPrice, u.StoryPrice, u.Barter, u.Mart, u.WorkConditions,
	)
	if err != nil {
		return fmt.Errorf("update blogger: %w", err)
	}
	return nil
}

// textArray maps a nil slice to an empty text[] so columns stay NOT NULL.
func textArray(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// textArrayOrNil keeps nil as NULL so COALESCE leaves the column alone.
func textArrayOrNil(v []string) any {
	if v == nil {
		return nil
	}
	return v
}
