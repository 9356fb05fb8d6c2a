package connections

import (
	"time"
	"userconnections/src/domain/entities"
)

// FreshnessPolicy decide se o estado já armazenado dispensa uma nova
// reconciliação. O predicado é plugável de propósito: "existir basta"
// nunca re-sincroniza um grafo que mudou no upstream.
type FreshnessPolicy interface {
	IsFresh(user entities.User, exists bool) bool
}

// ExistencePolicy pula a reconciliação sempre que o sujeito já existe,
// sem comparar conteúdo. É o comportamento padrão.
type ExistencePolicy struct{}

func (ExistencePolicy) IsFresh(user entities.User, exists bool) bool {
	return exists
}

// TTLPolicy pula a reconciliação só enquanto o updated_at do sujeito
// estiver dentro da janela; fora dela o sujeito é re-sincronizado.
type TTLPolicy struct {
	TTL time.Duration

	// Now existe para os testes congelarem o relógio.
	Now func() time.Time
}

func (p TTLPolicy) IsFresh(user entities.User, exists bool) bool {
	if !exists {
		return false
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	return now().Sub(user.UpdatedAt) <= p.TTL
}

// PolicyFromTTL traduz a config em política: 0 (ou negativo) mantém o
// comportamento clássico de existência.
func PolicyFromTTL(ttlSeconds int) FreshnessPolicy {
	if ttlSeconds <= 0 {
		return ExistencePolicy{}
	}

	return TTLPolicy{TTL: time.Duration(ttlSeconds) * time.Second}
}
