package connections

import (
	"context"
	"errors"
	"fmt"
	"userconnections/src/domain"
	"userconnections/src/domain/entities"
)

// GetConnections projeta o usuário armazenado com as listas agregadas de
// followers/following. Leitura pura; nunca dispara reconciliação.
func (s *ConnectionsService) GetConnections(ctx context.Context, platformUserID string) (domain.ConnectionsView, error) {
	view, err := s.cachedConnRepo.GetConnections(ctx, entities.PlatformGitHub, platformUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ConnectionsView{}, err
		}

		return domain.ConnectionsView{}, fmt.Errorf("ConnectionsService.GetConnections - failed to read projection: %w", err)
	}

	return view, nil
}
