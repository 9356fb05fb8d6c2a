//go:build datagen_users
// +build datagen_users

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"userconnections/src/helper/env"
	"userconnections/src/infra/postgres"

	"github.com/go-faker/faker/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Gera um grafo fake de usuários e follows para testar volume localmente:
//
//	go run -tags datagen_users datagen_users.go -users 10000 -max-follows 50

func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := 100
	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func main() {
	totalUsers := flag.Int("users", 1000, "quantidade de usuários fake")
	maxFollows := flag.Int("max-follows", 20, "máximo de follows por usuário")
	flag.Parse()

	ctx := context.Background()

	pool, err := newSQLClient()
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer pool.Close()

	log.Printf("Seeding %d users...", *totalUsers)

	userIDs := make([]int64, 0, *totalUsers)
	seen := make(map[string]bool, *totalUsers)

	for len(userIDs) < *totalUsers {
		login := strings.ToLower(faker.Username())
		if seen[login] {
			continue
		}
		seen[login] = true

		avatarURL := fmt.Sprintf("https://avatars.test/%s", login)

		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO users (platform, platform_user_id, username, avatar_url)
			VALUES ('github', $1, $1, $2)
			ON CONFLICT (platform, platform_user_id) DO UPDATE SET username = excluded.username
			RETURNING id`, login, avatarURL).Scan(&id)
		if err != nil {
			log.Fatalf("failed to insert user %s: %v", login, err)
		}

		userIDs = append(userIDs, id)
	}

	log.Printf("Seeding follows (up to %d per user)...", *maxFollows)

	totalFollows := 0
	for _, followerID := range userIDs {
		for i := 0; i < rand.Intn(*maxFollows+1); i++ {
			followingID := userIDs[rand.Intn(len(userIDs))]
			if followingID == followerID {
				continue
			}

			_, err := pool.Exec(ctx, `
				INSERT INTO follows (follower_id, following_id)
				VALUES ($1, $2)
				ON CONFLICT (follower_id, following_id) DO NOTHING`, followerID, followingID)
			if err != nil {
				log.Fatalf("failed to insert follow %d -> %d: %v", followerID, followingID, err)
			}
			totalFollows++
		}
	}

	log.Printf("Done: %d users, %d follows", len(userIDs), totalFollows)
}
