package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/bggame/pkg/game"
)

// FileStore keeps one JSON file per game under a root directory. Writes
// go through a temp file and rename, so a crash never leaves a
// half-written save behind.
type FileStore struct {
	root   string
	logger *zap.SugaredLogger
}

// NewFileStore creates the root directory if needed.
func NewFileStore(root string, logger *zap.SugaredLogger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}
	return &FileStore{root: root, logger: logger}, nil
}

func (s *FileStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("store: invalid game id %q", id)
	}
	return filepath.Join(s.root, id+".json"), nil
}

// Save writes the record, replacing any previous save under the id.
func (s *FileStore) Save(ctx context.Context, id string, sg *game.SavedGame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(sg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding saved game: %w", err)
	}

	tmp, err := os.CreateTemp(s.root, "."+id+"-*")
	if err != nil {
		return fmt.Errorf("creating temp save file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing save file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("committing save file: %w", err)
	}
	s.logger.Debugw("game saved", "id", id, "path", path)
	return nil
}

// Load reads the record saved under id.
func (s *FileStore) Load(ctx context.Context, id string) (*game.SavedGame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading save file: %w", err)
	}
	var sg game.SavedGame
	if err := json.Unmarshal(data, &sg); err != nil {
		return nil, fmt.Errorf("decoding save file %s: %w", path, err)
	}
	return &sg, nil
}

// Delete removes the save under id.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(id)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// List returns the saved game ids, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("listing save directory: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
