package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"userconnections/src/domain"
)

const DefaultBaseURL = "https://api.github.com"

// Client fala com o diretório do GitHub. Sem retry aqui: política de
// retry, se existir, pertence a quem chama.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(baseURL string, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
	}
}

// listedAccount é o que cada item das listas do GitHub carrega que nos interessa.
type listedAccount struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// FetchConnections busca as duas listas (followers e following) do usuário.
// São duas chamadas independentes; primeira página apenas.
func (c *Client) FetchConnections(ctx context.Context, username string) (domain.Snapshot, error) {
	followers, err := c.fetchList(ctx, username, "followers")
	if err != nil {
		return domain.Snapshot{}, err
	}

	following, err := c.fetchList(ctx, username, "following")
	if err != nil {
		return domain.Snapshot{}, err
	}

	return domain.Snapshot{Followers: followers, Following: following}, nil
}

func (c *Client) fetchList(ctx context.Context, username string, relation string) ([]domain.DirectoryAccount, error) {
	endpoint := fmt.Sprintf("%s/users/%s/%s", c.baseURL, url.PathEscape(username), relation)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github.Client.fetchList - failed to build request: %w", domain.ErrDirectoryUnavailable)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github.Client.fetchList - %s request failed (%v): %w", relation, err, domain.ErrDirectoryUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("github.Client.fetchList - subject %q missing upstream: %w", username, domain.ErrUserNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("github.Client.fetchList - %s returned status %d: %w", relation, resp.StatusCode, domain.ErrDirectoryUnavailable)
	}

	var listed []listedAccount
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		// Payload quebrado conta como indisponibilidade do upstream.
		return nil, fmt.Errorf("github.Client.fetchList - failed to decode %s payload (%v): %w", relation, err, domain.ErrDirectoryUnavailable)
	}

	accounts := make([]domain.DirectoryAccount, 0, len(listed))
	for _, item := range listed {
		accounts = append(accounts, domain.DirectoryAccount{
			Login:     item.Login,
			AvatarURL: item.AvatarURL,
		})
	}

	return accounts, nil
}
