package entities

import (
	"time"
)

// É a "aresta" direcionada do grafo: follower segue following.
// O par ordenado (follower_id, following_id) é único; a relação não é
// simétrica e a aresta não carrega conteúdo mutável.
type Follow struct {
	ID          int64     `json:"id"`
	FollowerID  int64     `json:"follower_id"`
	FollowingID int64     `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
