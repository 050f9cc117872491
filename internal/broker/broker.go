// Package broker publishes game events to NATS so external consumers
// (stats, history, spectators) can follow live games without holding an
// HTTP connection. Publishing is best effort: a broker failure never
// blocks or fails a game command.
package broker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/yourusername/bggame/internal/config"
	"github.com/yourusername/bggame/pkg/game"
)

// Publisher fans game events out to bggame.events.<gameID> subjects.
type Publisher struct {
	conn   *nats.Conn
	logger *zap.SugaredLogger
}

// envelope is the wire shape of one published event.
type envelope struct {
	GameID string          `json:"game_id"`
	Kind   game.EventKind  `json:"kind"`
	Event  json.RawMessage `json:"event"`
	Time   time.Time       `json:"time"`
}

// Connect dials NATS with reconnect handling.
func Connect(cfg config.NATSConfig, logger *zap.SugaredLogger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warnw("disconnected from nats", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Infow("reconnected to nats", "url", nc.ConnectedUrl())
		}),
		nats.Timeout(10 * time.Second),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", cfg.URL, err)
	}
	logger.Infow("connected to nats", "url", cfg.URL)
	return &Publisher{conn: conn, logger: logger}, nil
}

// Subject returns the per-game event subject.
func Subject(gameID string) string {
	return "bggame.events." + gameID
}

// PublishEvent sends one event for one game. Errors are logged and
// swallowed; the game must not notice a broken broker.
func (p *Publisher) PublishEvent(gameID string, ev game.Event) {
	raw, err := json.Marshal(ev)
	if err != nil {
		p.logger.Errorw("encoding event", "game", gameID, "kind", ev.Kind(), "error", err)
		return
	}
	data, err := json.Marshal(envelope{
		GameID: gameID,
		Kind:   ev.Kind(),
		Event:  raw,
		Time:   time.Now().UTC(),
	})
	if err != nil {
		p.logger.Errorw("encoding envelope", "game", gameID, "error", err)
		return
	}
	if err := p.conn.Publish(Subject(gameID), data); err != nil {
		p.logger.Warnw("publishing event", "game", gameID, "kind", ev.Kind(), "error", err)
	}
}

// Close flushes and closes the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Flush()
		p.conn.Close()
	}
}
