package stubs

import (
	"strings"
	"time"
	"userconnections/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type UserStub struct {
	user entities.User
}

func NewUserStub() UserStub {
	now := time.Now().UTC()

	login := strings.ToLower(gofakeit.Username())
	avatarURL := gofakeit.URL()

	user := entities.User{
		ID:             gofakeit.Int64(),
		Platform:       entities.PlatformGitHub,
		PlatformUserID: login,
		Username:       login,
		AvatarURL:      &avatarURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return UserStub{user: user}
}

func (us UserStub) WithPlatformUserID(platformUserID string) UserStub {
	us.user.PlatformUserID = platformUserID
	us.user.Username = platformUserID
	return us
}

func (us UserStub) WithUsername(username string) UserStub {
	us.user.Username = username
	return us
}

func (us UserStub) WithUpdatedAt(updatedAt time.Time) UserStub {
	us.user.UpdatedAt = updatedAt
	return us
}

func (us UserStub) Get() entities.User {
	return us.user
}
