package token

import (
	"path/filepath"

	"github.com/roomhub-io/go-booking-client/internal/storage"
)

const tokenFileName = "tokens.json"

var _ Repo = (*FileRepo)(nil)

// FileRepo stores the token pair as a JSON file inside the data folder.
type FileRepo struct {
	file *storage.JSONFile[Pair]
}

func NewFileRepo(dataFolder string) *FileRepo {
	return &FileRepo{file: storage.NewJSONFile[Pair](filepath.Join(dataFolder, tokenFileName))}
}

func (r *FileRepo) Load() (*Pair, error) {
	return r.file.Load()
}

func (r *FileRepo) Save(pair *Pair) error {
	return r.file.Save(pair)
}

func (r *FileRepo) Clear() error {
	return r.file.Clear()
}
