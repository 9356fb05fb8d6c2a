package entities

import (
	"time"
)

// Plataforma de origem da conta. Hoje só temos GitHub, mas o campo
// existe para não travar o schema quando outras plataformas chegarem.
type Platform string

const (
	PlatformGitHub Platform = "github"
)

// É o "nó" do grafo de conexões: uma conta de uma plataforma.
// A chave natural é o par (platform, platform_user_id); o ID interno
// é um surrogate gerado uma única vez por chave natural.
type User struct {
	ID             int64    `json:"id"`
	Platform       Platform `json:"platform"`
	PlatformUserID string   `json:"platform_user_id"`
	Username       string   `json:"username"`
	// AvatarURL vem do payload das listas do diretório; pode não existir.
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
