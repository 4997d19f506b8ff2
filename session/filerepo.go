package session

import (
	"path/filepath"

	"github.com/roomhub-io/go-booking-client/internal/storage"
)

const sessionFileName = "session.json"

var _ Repo = (*FileRepo)(nil)

// FileRepo stores the session snapshot as a JSON file inside the data folder.
type FileRepo struct {
	file *storage.JSONFile[Snapshot]
}

func NewFileRepo(dataFolder string) *FileRepo {
	return &FileRepo{file: storage.NewJSONFile[Snapshot](filepath.Join(dataFolder, sessionFileName))}
}

func (r *FileRepo) Load() (*Snapshot, error) {
	return r.file.Load()
}

func (r *FileRepo) Save(snapshot *Snapshot) error {
	return r.file.Save(snapshot)
}

func (r *FileRepo) Clear() error {
	return r.file.Clear()
}
