package repositories_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jackc/pgx/v5/pgxpool"

	"userconnections/src/domain"
	"userconnections/src/domain/entities"
	"userconnections/src/helper/env"
	"userconnections/src/infra/postgres"
	"userconnections/src/repositories"
	"userconnections/src/test_artefacts/test_seeder"
)

var _ = Describe("UserRepository", func() {
	var (
		pool           *pgxpool.Pool
		testSeeder     test_seeder.TestSeeder
		userRepository *repositories.UserRepository
		ctx            context.Context
		err            error
	)

	dbHost := env.MustGetString("TEST_DB_HOST")
	dbPort := env.GetString("TEST_DB_PORT", "5432")
	dbname := env.MustGetString("TEST_DB_NAME")
	dbUser := env.MustGetString("TEST_DB_USER")
	dbPassword := env.MustGetString("TEST_DB_PASSWORD")
	maxConnections := env.GetInt("TEST_DB_MAX_POOL_CONNECTIONS", 25)

	BeforeEach(func() {
		ctx = context.Background()

		// Conexão com o banco de teste
		pool, err = postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
		if err != nil {
			panic(err)
		}

		userRepository = repositories.NewUserRepository(pool)
		testSeeder = test_seeder.New(pool)

		// Limpar dados
		testSeeder.TruncateTables(ctx)
	})

	AfterEach(func() {
		if pool != nil {
			pool.Close()
		}
	})

	Context("when upserting a new natural key", func() {
		When("calling Upsert for an unseen login", func() {
			It("creates the row and returns the surrogate identity", func() {
				// ACT
				user, err := userRepository.Upsert(ctx, entities.PlatformGitHub, "alice", "alice", "https://avatars.test/alice")

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(user.ID).To(BeNumerically(">", 0))
				Expect(user.Platform).To(Equal(entities.PlatformGitHub))
				Expect(user.PlatformUserID).To(Equal("alice"))
				Expect(user.Username).To(Equal("alice"))
				Expect(*user.AvatarURL).To(Equal("https://avatars.test/alice"))
				Expect(testSeeder.CountUsers(ctx)).To(Equal(1))
			})
		})
	})

	Context("when upserting an existing natural key", func() {
		When("calling Upsert again with a changed display name", func() {
			It("updates in place and keeps the same identity", func() {
				first, err := userRepository.Upsert(ctx, entities.PlatformGitHub, "alice", "alice", "")
				Expect(err).NotTo(HaveOccurred())

				// ACT
				second, err := userRepository.Upsert(ctx, entities.PlatformGitHub, "alice", "Alice Renamed", "")

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(second.ID).To(Equal(first.ID))
				Expect(second.Username).To(Equal("Alice Renamed"))
				Expect(testSeeder.CountUsers(ctx)).To(Equal(1))
			})
		})

		When("calling Upsert concurrently for the same natural key", func() {
			It("converges to a single row and every caller succeeds", func() {
				const writers = 10

				var wg sync.WaitGroup
				errs := make([]error, writers)

				// ACT
				for i := 0; i < writers; i++ {
					wg.Add(1)
					go func(idx int) {
						defer wg.Done()
						_, errs[idx] = userRepository.Upsert(ctx, entities.PlatformGitHub, "shared-login", "shared-login", "")
					}(i)
				}
				wg.Wait()

				// ASSERT
				for _, upsertErr := range errs {
					Expect(upsertErr).NotTo(HaveOccurred())
				}
				Expect(testSeeder.CountUsers(ctx)).To(Equal(1))
			})
		})
	})

	Context("when reading by natural key", func() {
		When("the user exists", func() {
			It("returns the row", func() {
				created, err := userRepository.Upsert(ctx, entities.PlatformGitHub, "alice", "alice", "")
				Expect(err).NotTo(HaveOccurred())

				found, err := userRepository.FindByNaturalKey(ctx, entities.PlatformGitHub, "alice")

				Expect(err).NotTo(HaveOccurred())
				Expect(found.ID).To(Equal(created.ID))
			})
		})

		When("the user does not exist", func() {
			It("classifies the miss as not found", func() {
				_, err := userRepository.FindByNaturalKey(ctx, entities.PlatformGitHub, "nobody")

				Expect(err).To(MatchError(domain.ErrUserNotFound))
			})
		})
	})
})
