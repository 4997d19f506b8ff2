package session

// Repo is the persistence boundary for the session snapshot: loaded once at
// construction, saved on every state transition, cleared on logout or
// expiry. Keeping it behind one interface keeps the storage side effect
// auditable instead of scattering durable writes through the actions.
type Repo interface {
	Load() (*Snapshot, error)
	Save(snapshot *Snapshot) error
	Clear() error
}
