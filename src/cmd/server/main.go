package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"
	"userconnections/src/clients/github"
	"userconnections/src/helper/env"
	"userconnections/src/infra/kafka"
	"userconnections/src/infra/postgres"
	"userconnections/src/infra/redis"
	"userconnections/src/repositories"
	"userconnections/src/server"
	"userconnections/src/services/connections"
	"userconnections/src/services/events"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

func main() {
	// Configurar logger
	log.SetOutput(os.Stdout)
	log.Println("Starting API server with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newSQLClient,
			newRedisClient,
			newKafkaClient,
			newGithubClient,
			newUserRepository,
			newFollowRepository,
			newConnectionQueryRepository,
			newCachedConnectionRepository,
			newConnectionEventPublisher,
			newConnectionsService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// newSQLClient configures and returns a pgxpool connection pool
func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func newRedisClient() *redis.RedisClient {
	redisAddrs := env.MustGetString("REDIS_HOSTS")
	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 100)
	redisTTL := env.GetInt("REDIS_TTL_SECONDS", 300)

	return redis.NewRedisClient(redisAddrs, redisPoolSize, time.Duration(redisTTL)*time.Second)
}

func newKafkaClient() (*kafka.KafkaClient, error) {
	brokers := env.MustGetString("KAFKA_BROKERS")

	return kafka.NewKafkaClient(brokers)
}

func newGithubClient() *github.Client {
	baseURL := env.GetString("GITHUB_API_URL", github.DefaultBaseURL)
	token := env.GetString("GITHUB_TOKEN", "")

	return github.NewClient(baseURL, token)
}

func newUserRepository(pool *pgxpool.Pool) *repositories.UserRepository {
	return repositories.NewUserRepository(pool)
}

func newFollowRepository(pool *pgxpool.Pool) *repositories.FollowRepository {
	return repositories.NewFollowRepository(pool)
}

func newConnectionQueryRepository(pool *pgxpool.Pool) *repositories.ConnectionQueryRepository {
	return repositories.NewConnectionQueryRepository(pool)
}

func newCachedConnectionRepository(
	queryRepository *repositories.ConnectionQueryRepository,
	redisClient *redis.RedisClient,
) *repositories.CachedConnectionRepository {
	return repositories.NewCachedConnectionRepository(queryRepository, redisClient)
}

func newConnectionEventPublisher(logger *slog.Logger, kafkaClient *kafka.KafkaClient) *events.ConnectionEventPublisher {
	topic := env.GetString("KAFKA_RECONCILED_TOPIC", "connections.reconciled")

	return events.NewConnectionEventPublisher(logger, kafkaClient, topic)
}

func newConnectionsService(
	logger *slog.Logger,
	githubClient *github.Client,
	userRepository *repositories.UserRepository,
	followRepository *repositories.FollowRepository,
	cachedConnectionRepository *repositories.CachedConnectionRepository,
	eventPublisher *events.ConnectionEventPublisher,
) *connections.ConnectionsService {
	freshnessPolicy := connections.PolicyFromTTL(env.GetInt("RECONCILE_TTL_SECONDS", 0))

	return connections.NewConnectionsService(
		logger,
		githubClient,
		userRepository,
		followRepository,
		cachedConnectionRepository,
		eventPublisher,
		freshnessPolicy,
	)
}

func newServer(
	logger *slog.Logger,
	connectionsService *connections.ConnectionsService,
) *server.Server {

	port := 8888 // default value
	if portStr := os.Getenv("SERVER_ADDR"); portStr != "" {
		if val, err := strconv.Atoi(portStr); err == nil {
			port = val
		}
	}

	server := server.NewServer(logger, port, connectionsService)

	return server
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *server.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Create timeout context for graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			log.Println("Shutting down server...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}
			log.Println("Server exited gracefully")
			return nil
		},
	})
}
