package connections

import (
	"context"
	"errors"
	"fmt"
	"time"
	"userconnections/src/domain"
	"userconnections/src/domain/entities"
	"userconnections/src/services/events"

	"golang.org/x/sync/errgroup"
)

// CreateConnections reconcilia o grafo de um sujeito: busca o snapshot no
// diretório, decide se o estado local já serve e, se não, faz o fan-out de
// upserts de usuários e arestas. Não há transação englobando a reconciliação:
// uma falha no meio deixa o grafo parcialmente salvo, e isso é aceito — os
// upserts são idempotentes e a próxima tentativa converge.
func (s *ConnectionsService) CreateConnections(ctx context.Context, platformUserID string) (domain.ReconcileResult, error) {
	// Fetching: valida de quebra que o sujeito existe no upstream.
	snapshot, err := s.directoryClient.FetchConnections(ctx, platformUserID)
	if err != nil {
		return domain.ReconcileResult{}, s.classify(err)
	}

	// Checking: um point read, sem criar nada ainda.
	existing, err := s.userRepository.FindByNaturalKey(ctx, entities.PlatformGitHub, platformUserID)
	exists := err == nil
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return domain.ReconcileResult{}, s.classify(err)
	}

	if s.freshnessPolicy.IsFresh(existing, exists) {
		return domain.ReconcileResult{
			Message:    "User data already exists and is up to date",
			IsExisting: true,
		}, nil
	}

	// Upserting: primeiro o sujeito, para ter o ID interno das arestas.
	subject, err := s.userRepository.Upsert(ctx, entities.PlatformGitHub, platformUserID, platformUserID, "")
	if err != nil {
		return domain.ReconcileResult{}, s.classify(err)
	}

	// Fan-out: uma unidade por login das duas listas, todas lançadas juntas.
	// Grupo sem contexto derivado de propósito: o primeiro erro falha o
	// agregado, mas as unidades em voo correm até o fim, sem cancelamento.
	var group errgroup.Group

	for _, account := range snapshot.Followers {
		group.Go(func() error {
			follower, err := s.userRepository.Upsert(ctx, entities.PlatformGitHub, account.Login, account.Login, account.AvatarURL)
			if err != nil {
				return err
			}

			_, err = s.followRepo.Upsert(ctx, follower.ID, subject.ID)
			return err
		})
	}

	for _, account := range snapshot.Following {
		group.Go(func() error {
			followed, err := s.userRepository.Upsert(ctx, entities.PlatformGitHub, account.Login, account.Login, account.AvatarURL)
			if err != nil {
				return err
			}

			_, err = s.followRepo.Upsert(ctx, subject.ID, followed.ID)
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return domain.ReconcileResult{}, s.classify(err)
	}

	s.afterReconcile(ctx, subject, snapshot)

	return domain.ReconcileResult{
		Message:    "User data has been created successfully",
		IsExisting: false,
	}, nil
}

// afterReconcile invalida a projeção cacheada e anuncia o desfecho.
// Os dois são best-effort: o grafo já está salvo.
func (s *ConnectionsService) afterReconcile(ctx context.Context, subject entities.User, snapshot domain.Snapshot) {
	if err := s.cachedConnRepo.Invalidate(ctx, subject.Platform, subject.PlatformUserID); err != nil {
		s.logger.Warn("Failed to invalidate connections cache",
			"platform_user_id", subject.PlatformUserID,
			"error", err)
	}

	event := events.ConnectionsReconciledEvent{
		Platform:       string(subject.Platform),
		PlatformUserID: subject.PlatformUserID,
		UserID:         subject.ID,
		FollowerCount:  len(snapshot.Followers),
		FollowingCount: len(snapshot.Following),
		ReconciledAt:   time.Now().UTC(),
	}

	if err := s.eventPublisher.PublishReconciled(ctx, event); err != nil {
		s.logger.Warn("Failed to publish reconciled event",
			"platform_user_id", subject.PlatformUserID,
			"error", err)
	}
}

// classify preserva as falhas já classificadas e normaliza o resto no
// erro genérico: detalhe interno não vaza para o caller.
func (s *ConnectionsService) classify(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrDirectoryUnavailable) ||
		errors.Is(err, domain.ErrPersistenceFailure) {
		return err
	}

	s.logger.Error("Unclassified reconciliation failure", "error", err)

	return fmt.Errorf("ConnectionsService.CreateConnections - %v: %w", err, domain.ErrSaveConnections)
}
