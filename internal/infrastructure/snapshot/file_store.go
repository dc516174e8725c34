package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/quilitane/cunilympiades/internal/domain/game"
	"github.com/quilitane/cunilympiades/internal/infrastructure/seed"
	"github.com/valyala/bytebufferpool"
)

// FileStore mirrors the live dataset to teams.json and challenges.json in a
// directory, the same layout the seed loader reads. Writes go through a
// temp file and rename so a crash mid-write never leaves a torn file, and
// Persist holds a mutex so the two files always come from the same snapshot
// even when the persistence pool runs sinks concurrently.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, crerr.New("snapshot directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "create snapshot directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Name() string {
	return "file"
}

func (s *FileStore) Persist(_ context.Context, dataset game.Dataset) error {
	teamsRaw, err := seed.EncodeTeams(dataset.Teams)
	if err != nil {
		return err
	}
	challengesRaw, err := seed.EncodeChallenges(dataset.Challenges)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeFile("teams.json", teamsRaw); err != nil {
		return err
	}
	return s.writeFile("challenges.json", challengesRaw)
}

func (s *FileStore) writeFile(name string, raw []byte) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.Write(raw)
	_, _ = buf.WriteString("\n")

	tmp, err := os.CreateTemp(s.dir, name+"-*")
	if err != nil {
		return crerr.Wrapf(err, "create temp snapshot for %s", name)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return crerr.Wrapf(err, "chmod snapshot %s", tmp.Name())
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return crerr.Wrapf(err, "write snapshot %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return crerr.Wrapf(err, "close snapshot %s", tmp.Name())
	}

	target := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return crerr.Wrapf(err, "install snapshot %s", target)
	}

	return nil
}
