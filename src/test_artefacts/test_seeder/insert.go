package test_seeder

import (
	"context"
	"fmt"
	"userconnections/src/domain/entities"
	"userconnections/src/infra/postgres"
)

// InsertUser inserts a user into the database for testing
func (ts TestSeeder) InsertUser(ctx context.Context, user *entities.User) {
	query := `
		INSERT INTO users (platform, platform_user_id, username, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		string(user.Platform),
		user.PlatformUserID,
		user.Username,
		postgres.NewNullString(user.AvatarURL),
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertUser failed: %v", err))
	}
}

// InsertFollow inserts a follow edge into the database for testing
func (ts TestSeeder) InsertFollow(ctx context.Context, follow *entities.Follow) {
	query := `
		INSERT INTO follows (follower_id, following_id, created_at)
		VALUES ($1, $2, $3) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		follow.FollowerID,
		follow.FollowingID,
		follow.CreatedAt,
	).Scan(&follow.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertFollow failed: %v", err))
	}
}
