package stubs

import (
	"context"
	"sync/atomic"
	"userconnections/src/domain"
)

// DirectoryClientStub substitui o diretório upstream nos testes de serviço:
// devolve um snapshot fixo ou um erro configurado, e conta as chamadas.
type DirectoryClientStub struct {
	snapshot domain.Snapshot
	err      error
	calls    *atomic.Int64
}

func NewDirectoryClientStub() DirectoryClientStub {
	return DirectoryClientStub{calls: &atomic.Int64{}}
}

func (dcs DirectoryClientStub) WithFollowers(logins ...string) DirectoryClientStub {
	for _, login := range logins {
		dcs.snapshot.Followers = append(dcs.snapshot.Followers, domain.DirectoryAccount{Login: login})
	}
	return dcs
}

func (dcs DirectoryClientStub) WithFollowing(logins ...string) DirectoryClientStub {
	for _, login := range logins {
		dcs.snapshot.Following = append(dcs.snapshot.Following, domain.DirectoryAccount{Login: login})
	}
	return dcs
}

func (dcs DirectoryClientStub) WithError(err error) DirectoryClientStub {
	dcs.err = err
	return dcs
}

func (dcs DirectoryClientStub) FetchConnections(ctx context.Context, username string) (domain.Snapshot, error) {
	dcs.calls.Add(1)

	if dcs.err != nil {
		return domain.Snapshot{}, dcs.err
	}

	return dcs.snapshot, nil
}

func (dcs DirectoryClientStub) Calls() int64 {
	return dcs.calls.Load()
}
