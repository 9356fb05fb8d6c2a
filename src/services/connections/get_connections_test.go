package connections_test

import (
	"context"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"

	"userconnections/src/domain"
	"userconnections/src/domain/entities"
	"userconnections/src/helper/env"
	"userconnections/src/infra/postgres"
	"userconnections/src/infra/redis"
	"userconnections/src/repositories"
	"userconnections/src/services/connections"
	"userconnections/src/test_artefacts/comparer"
	"userconnections/src/test_artefacts/stubs"
	"userconnections/src/test_artefacts/test_seeder"
)

var _ = Describe("GetConnections", func() {
	var (
		pool             *pgxpool.Pool
		redisClient      *redis.RedisClient
		testSeeder       test_seeder.TestSeeder
		cachedRepository *repositories.CachedConnectionRepository
		service          *connections.ConnectionsService
		ctx              context.Context
		err              error
	)

	dbHost := env.MustGetString("TEST_DB_HOST")
	dbPort := env.GetString("TEST_DB_PORT", "5432")
	dbname := env.MustGetString("TEST_DB_NAME")
	dbUser := env.MustGetString("TEST_DB_USER")
	dbPassword := env.MustGetString("TEST_DB_PASSWORD")
	maxConnections := env.GetInt("TEST_DB_MAX_POOL_CONNECTIONS", 25)

	redisAddrs := env.MustGetString("TEST_REDIS_HOSTS")
	redisPoolSize := env.GetInt("TEST_REDIS_POOL_SIZE", 10)
	redisTTL := env.GetInt("TEST_REDIS_TTL_SECONDS", 1)

	BeforeEach(func() {
		ctx = context.Background()

		pool, err = postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
		if err != nil {
			panic(err)
		}

		redisClient = redis.NewRedisClient(redisAddrs, redisPoolSize, time.Duration(redisTTL)*time.Second).WithPrefix("test:")

		userRepository := repositories.NewUserRepository(pool)
		followRepository := repositories.NewFollowRepository(pool)
		queryRepository := repositories.NewConnectionQueryRepository(pool)
		cachedRepository = repositories.NewCachedConnectionRepository(queryRepository, redisClient)
		testSeeder = test_seeder.New(pool)

		service = connections.NewConnectionsService(
			slog.Default(),
			stubs.NewDirectoryClientStub(),
			userRepository,
			followRepository,
			cachedRepository,
			stubs.NewEventPublisherStub(),
			connections.ExistencePolicy{},
		)

		testSeeder.TruncateTables(ctx)
		redisClient.FlushByPrefix(ctx)
	})

	AfterEach(func() {
		if pool != nil {
			pool.Close()
		}
	})

	Context("when the subject exists with connections", func() {
		var (
			alice entities.User
			bob   entities.User
			carol entities.User
		)

		BeforeEach(func() {
			alice = stubs.NewUserStub().WithPlatformUserID("alice").Get()
			bob = stubs.NewUserStub().WithPlatformUserID("bob").Get()
			carol = stubs.NewUserStub().WithPlatformUserID("carol").Get()

			testSeeder.InsertUser(ctx, &alice)
			testSeeder.InsertUser(ctx, &bob)
			testSeeder.InsertUser(ctx, &carol)

			// bob segue alice; alice segue carol
			bobFollowsAlice := entities.Follow{FollowerID: bob.ID, FollowingID: alice.ID, CreatedAt: time.Now().UTC()}
			aliceFollowsCarol := entities.Follow{FollowerID: alice.ID, FollowingID: carol.ID, CreatedAt: time.Now().UTC()}
			testSeeder.InsertFollow(ctx, &bobFollowsAlice)
			testSeeder.InsertFollow(ctx, &aliceFollowsCarol)
		})

		It("projects the subject with aggregated follower and following names", func() {
			// ACT
			view, err := service.GetConnections(ctx, "alice")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())

			expected := domain.ConnectionsView{
				UserID:      alice.ID,
				Username:    alice.Username,
				Followers:   []string{"bob"},
				Following:   []string{"carol"},
				LastUpdated: alice.UpdatedAt,
			}

			diff := cmp.Diff(expected, view, comparer.TimeWithinTolerance(1000))
			Expect(diff).To(BeEmpty())
		})

		It("serves the same projection from the cache on a second read", func() {
			first, err := service.GetConnections(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())

			// O preenchimento do cache acontece em background
			Eventually(func() (string, error) {
				value, _, getErr := redisClient.GetKey(ctx, "connections:github:alice")
				return value, getErr
			}).ShouldNot(BeEmpty())

			second, err := service.GetConnections(ctx, "alice")

			Expect(err).NotTo(HaveOccurred())
			Expect(cmp.Diff(first, second, comparer.TimeWithinTolerance(1000))).To(BeEmpty())
		})

		It("stops serving the cached projection after invalidation", func() {
			_, err := service.GetConnections(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())

			Eventually(func() (string, error) {
				value, _, getErr := redisClient.GetKey(ctx, "connections:github:alice")
				return value, getErr
			}).ShouldNot(BeEmpty())

			// ACT
			err = cachedRepository.Invalidate(ctx, entities.PlatformGitHub, "alice")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			value, found, getErr := redisClient.GetKey(ctx, "connections:github:alice")
			Expect(getErr).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
			Expect(value).To(BeEmpty())
		})
	})

	Context("when the subject has no connections", func() {
		It("projects empty follower and following lists", func() {
			loner := stubs.NewUserStub().WithPlatformUserID("loner").Get()
			testSeeder.InsertUser(ctx, &loner)

			view, err := service.GetConnections(ctx, "loner")

			Expect(err).NotTo(HaveOccurred())
			Expect(view.Followers).To(BeEmpty())
			Expect(view.Following).To(BeEmpty())
		})
	})

	Context("when the subject was never imported", func() {
		It("classifies the miss as not found", func() {
			_, err := service.GetConnections(ctx, "nobody")

			Expect(err).To(MatchError(domain.ErrUserNotFound))
		})
	})
})
