package faketokenrepo

import (
	"sync"

	"github.com/roomhub-io/go-booking-client/internal/storage"
	"github.com/roomhub-io/go-booking-client/token"
)

var _ token.Repo = (*FakeTokenRepo)(nil)

type FakeTokenRepo struct {
	pair *token.Pair
	lock sync.RWMutex

	SaveCalls  int
	ClearCalls int
}

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{}
}

func (r *FakeTokenRepo) Load() (*token.Pair, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.pair == nil {
		return nil, storage.ErrNotFound
	}
	p := *r.pair
	return &p, nil
}

func (r *FakeTokenRepo) Save(pair *token.Pair) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	p := *pair
	r.pair = &p
	r.SaveCalls++
	return nil
}

func (r *FakeTokenRepo) Clear() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.pair = nil
	r.ClearCalls++
	return nil
}
