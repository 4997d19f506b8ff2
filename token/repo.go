package token

// Repo persists the current token pair. Tokens are stored under their own key,
// separate from the session snapshot, so clearing one never corrupts the
// other.
type Repo interface {
	Load() (*Pair, error)
	Save(pair *Pair) error
	Clear() error
}
