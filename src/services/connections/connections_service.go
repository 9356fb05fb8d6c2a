package connections

import (
	"context"
	"log/slog"
	"userconnections/src/domain"
	"userconnections/src/repositories"
	"userconnections/src/services/events"
)

// DirectoryClient busca o snapshot de conexões no diretório upstream.
type DirectoryClient interface {
	FetchConnections(ctx context.Context, username string) (domain.Snapshot, error)
}

// EventPublisher anuncia o desfecho de uma reconciliação. Best-effort:
// falha de publicação não falha a reconciliação.
type EventPublisher interface {
	PublishReconciled(ctx context.Context, event events.ConnectionsReconciledEvent) error
}

type ConnectionsService struct {
	logger          *slog.Logger
	directoryClient DirectoryClient
	userRepository  *repositories.UserRepository
	followRepo      *repositories.FollowRepository
	cachedConnRepo  *repositories.CachedConnectionRepository
	eventPublisher  EventPublisher
	freshnessPolicy FreshnessPolicy
}

func NewConnectionsService(
	logger *slog.Logger,
	directoryClient DirectoryClient,
	userRepository *repositories.UserRepository,
	followRepo *repositories.FollowRepository,
	cachedConnRepo *repositories.CachedConnectionRepository,
	eventPublisher EventPublisher,
	freshnessPolicy FreshnessPolicy,
) *ConnectionsService {
	return &ConnectionsService{
		logger:          logger,
		directoryClient: directoryClient,
		userRepository:  userRepository,
		followRepo:      followRepo,
		cachedConnRepo:  cachedConnRepo,
		eventPublisher:  eventPublisher,
		freshnessPolicy: freshnessPolicy,
	}
}
