// Package store persists saved games. Two backends are provided: a
// directory of JSON files and a Redis keyspace. Both store the
// game.SavedGame record verbatim, so a load reproduces exactly what was
// saved.
package store

import (
	"context"
	"errors"

	"github.com/yourusername/bggame/pkg/game"
)

// ErrNotFound reports that no saved game exists under the given id.
var ErrNotFound = errors.New("store: game not found")

// GameStore saves and loads game records under caller-chosen ids.
type GameStore interface {
	Save(ctx context.Context, id string, sg *game.SavedGame) error
	Load(ctx context.Context, id string) (*game.SavedGame, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}
