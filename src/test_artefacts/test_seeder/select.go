package test_seeder

import (
	"context"
	"userconnections/src/domain/entities"
)

// SelectUsersByPlatformUserIDs retrieves users by their natural-key identifiers
func (ts TestSeeder) SelectUsersByPlatformUserIDs(ctx context.Context, platformUserIDs []string) ([]entities.User, error) {
	query := `SELECT id, platform, platform_user_id, username, avatar_url, created_at, updated_at
			  FROM users WHERE platform_user_id = ANY($1) ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, platformUserIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		var user entities.User
		var platform string
		err := rows.Scan(
			&user.ID,
			&platform,
			&user.PlatformUserID,
			&user.Username,
			&user.AvatarURL,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		user.Platform = entities.Platform(platform)
		users = append(users, user)
	}

	return users, rows.Err()
}

// SelectAllFollows retrieves every follow edge, ordered for stable assertions
func (ts TestSeeder) SelectAllFollows(ctx context.Context) ([]entities.Follow, error) {
	query := `SELECT id, follower_id, following_id, created_at
			  FROM follows ORDER BY follower_id, following_id`

	rows, err := ts.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var follows []entities.Follow
	for rows.Next() {
		var follow entities.Follow
		err := rows.Scan(
			&follow.ID,
			&follow.FollowerID,
			&follow.FollowingID,
			&follow.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		follows = append(follows, follow)
	}

	return follows, rows.Err()
}

// CountUsers returns the total number of user rows
func (ts TestSeeder) CountUsers(ctx context.Context) int {
	var count int
	if err := ts.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		panic(err)
	}
	return count
}

// CountFollows returns the total number of follow rows
func (ts TestSeeder) CountFollows(ctx context.Context) int {
	var count int
	if err := ts.pool.QueryRow(ctx, `SELECT COUNT(*) FROM follows`).Scan(&count); err != nil {
		panic(err)
	}
	return count
}
