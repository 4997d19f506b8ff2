package token

import (
	"sync"

	"github.com/pkg/errors"
)

// Vault guards the process's single valid token pair. It is the only writer
// of token state besides the gateway's refresh routine, and every mutation
// goes straight through the persistence repo so storage never drifts from
// memory.
type Vault struct {
	repo Repo

	mu   sync.RWMutex
	pair *Pair
}

// NewVault builds a vault and restores any previously persisted pair.
// A missing or unreadable stored pair simply leaves the vault empty.
func NewVault(repo Repo) (*Vault, error) {
	if repo == nil {
		return nil, errors.New("[NewVault] repo is required")
	}
	v := &Vault{repo: repo}
	if pair, err := repo.Load(); err == nil && pair != nil {
		v.pair = pair
	}
	return v, nil
}

// Access returns the current access token, if any.
func (v *Vault) Access() (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.pair == nil || v.pair.AccessToken == "" {
		return "", false
	}
	return v.pair.AccessToken, true
}

// RefreshToken returns the current refresh token, if any.
func (v *Vault) RefreshToken() (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.pair == nil || v.pair.RefreshToken == "" {
		return "", false
	}
	return v.pair.RefreshToken, true
}

// Set replaces the current pair and persists it.
func (v *Vault) Set(pair Pair) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pair = &pair
	if err := v.repo.Save(&pair); err != nil {
		return errors.Wrap(err, "[Vault.Set] repo.Save")
	}
	return nil
}

// Clear discards the pair in memory and in storage. Clearing an already
// empty vault is a no-op.
func (v *Vault) Clear() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pair = nil
	if err := v.repo.Clear(); err != nil {
		return errors.Wrap(err, "[Vault.Clear] repo.Clear")
	}
	return nil
}

// Current returns a copy of the held pair.
func (v *Vault) Current() (Pair, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.pair == nil {
		return Pair{}, false
	}
	return *v.pair, true
}
