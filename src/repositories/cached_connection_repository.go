package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"userconnections/src/domain"
	"userconnections/src/domain/entities"
	"userconnections/src/infra/redis"
)

// CachedConnectionRepository é um read-through cache sobre a projeção de
// conexões. Erro de cache nunca derruba a leitura: cai para o PostgreSQL.
type CachedConnectionRepository struct {
	queryRepository *ConnectionQueryRepository
	redisClient     *redis.RedisClient
}

func NewCachedConnectionRepository(
	queryRepository *ConnectionQueryRepository,
	redisClient *redis.RedisClient,
) *CachedConnectionRepository {
	return &CachedConnectionRepository{
		queryRepository: queryRepository,
		redisClient:     redisClient,
	}
}

func (r *CachedConnectionRepository) GetConnections(ctx context.Context, platform entities.Platform, platformUserID string) (domain.ConnectionsView, error) {
	cacheKey := r.cacheKey(platform, platformUserID)

	cachedData, found, err := r.redisClient.GetKey(ctx, cacheKey)
	if found && err == nil {
		var view domain.ConnectionsView
		if unmarshalErr := json.Unmarshal([]byte(cachedData), &view); unmarshalErr == nil {
			return view, nil
		}

		log.Printf("Cache entry corrupted for key %s, falling back to postgres", cacheKey)
	}

	if err != nil {
		// Log erro de cache mas continua com PostgreSQL
		log.Printf("Cache error for key %s: %v", cacheKey, err)
	}

	view, err := r.queryRepository.GetConnections(ctx, platform, platformUserID)
	if err != nil {
		return domain.ConnectionsView{}, err
	}

	go func() {
		// Timeout de 30 segundos para operação de cache
		ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		r.setInCache(ctxWithTimeout, cacheKey, view)
	}()

	return view, nil
}

// Invalidate remove a projeção cacheada; chamado depois de uma reconciliação.
func (r *CachedConnectionRepository) Invalidate(ctx context.Context, platform entities.Platform, platformUserID string) error {
	return r.redisClient.InvalidateKeys(ctx, []string{r.cacheKey(platform, platformUserID)})
}

func (r *CachedConnectionRepository) setInCache(ctx context.Context, cacheKey string, view domain.ConnectionsView) {
	payload, err := json.Marshal(view)
	if err != nil {
		log.Printf("Failed to marshal view for cache key %s: %v", cacheKey, err)
		return
	}

	if err := r.redisClient.SetKey(ctx, cacheKey, string(payload)); err != nil {
		log.Printf("Failed to set cache for key %s: %v", cacheKey, err)
	}
}

func (r *CachedConnectionRepository) cacheKey(platform entities.Platform, platformUserID string) string {
	return fmt.Sprintf("connections:%s:%s", platform, platformUserID)
}
