package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// O diretório respondeu algo diferente de 200/404: timeout, rate limit,
	// payload quebrado. Não distinguimos subtipos de falha do upstream.
	ErrDirectoryUnavailable = errors.New("could not get directory data")

	// Falha de escrita/leitura no storage que o fallback não resolveu.
	ErrPersistenceFailure = errors.New("persistence failure")

	// Catch-all devolvido ao caller quando nenhuma classificação se aplica.
	ErrSaveConnections = errors.New("could not save user connections")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ############################################################
// ############ PROCESSO DE RECONCILIAÇÃO (ESCRITA) ###########
// ############################################################

// DirectoryAccount é um item das listas do diretório upstream.
type DirectoryAccount struct {
	Login     string
	AvatarURL string
}

// Snapshot é o par de listas buscado por reconciliação. Transiente:
// vive apenas durante uma chamada, nunca é persistido. A ordem vinda
// do upstream não tem significado.
type Snapshot struct {
	Followers []DirectoryAccount
	Following []DirectoryAccount
}

// ReconcileResult resume o desfecho de uma reconciliação.
type ReconcileResult struct {
	Message    string `json:"message"`
	IsExisting bool   `json:"isExisting"`
}

// ############################################################
// ############### PROCESSO DE LEITURA (PROJEÇÃO) #############
// ############################################################

// ConnectionsView é a projeção de um usuário com suas conexões agregadas.
type ConnectionsView struct {
	UserID      int64     `json:"id"`
	Username    string    `json:"username"`
	Followers   []string  `json:"followers"`
	Following   []string  `json:"following"`
	LastUpdated time.Time `json:"last_updated"`
}
