package fakesessionrepo

import (
	"sync"

	"github.com/roomhub-io/go-booking-client/internal/storage"
	"github.com/roomhub-io/go-booking-client/session"
)

var _ session.Repo = (*FakeSessionRepo)(nil)

type FakeSessionRepo struct {
	snapshot *session.Snapshot
	lock     sync.RWMutex

	SaveCalls  int
	ClearCalls int
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{}
}

func (r *FakeSessionRepo) Load() (*session.Snapshot, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.snapshot == nil {
		return nil, storage.ErrNotFound
	}
	snap := *r.snapshot
	return &snap, nil
}

func (r *FakeSessionRepo) Save(snapshot *session.Snapshot) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	snap := *snapshot
	r.snapshot = &snap
	r.SaveCalls++
	return nil
}

func (r *FakeSessionRepo) Clear() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.snapshot = nil
	r.ClearCalls++
	return nil
}

// Seed places a snapshot directly, bypassing the Save counter.
func (r *FakeSessionRepo) Seed(snapshot *session.Snapshot) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.snapshot = snapshot
}
