package server

import (
	"time"
	"userconnections/src/domain"
)

type CreateConnectionsRequest struct {
	UserID string `json:"userId"`
}

type CreateConnectionsResponse struct {
	Message    string `json:"message"`
	IsExisting bool   `json:"isExisting"`
}

type ConnectionsUserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type ConnectionsResponse struct {
	User        ConnectionsUserDTO `json:"user"`
	Followers   []string           `json:"followers"`
	Following   []string           `json:"following"`
	LastUpdated time.Time          `json:"lastUpdated"`
}

func MapViewToResponse(view domain.ConnectionsView) ConnectionsResponse {
	followers := view.Followers
	if followers == nil {
		followers = []string{}
	}

	following := view.Following
	if following == nil {
		following = []string{}
	}

	return ConnectionsResponse{
		User: ConnectionsUserDTO{
			ID:       view.UserID,
			Username: view.Username,
		},
		Followers:   followers,
		Following:   following,
		LastUpdated: view.LastUpdated,
	}
}
