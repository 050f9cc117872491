package api

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yourusername/bggame/pkg/ai"
	"github.com/yourusername/bggame/pkg/game"
	"github.com/yourusername/bggame/pkg/match"
)

// session is one live game: a controller, its AI, its transcript, and
// the event subscribers following it. The mutex serializes every
// command so the controller stays single-threaded.
type session struct {
	id  string
	mu  sync.Mutex
	ctl *game.Controller
	rec *match.Recorder

	subMu sync.Mutex
	subs  map[chan game.Event]struct{}
}

// newSession wires a controller to a transcript recorder and the
// subscriber fan-out. extra, when non-nil, also sees every event (the
// NATS publisher hooks in here).
func newSession(id string, ctl *game.Controller, rec *match.Recorder, extra game.Listener) *session {
	if id == "" {
		id = uuid.NewString()
	}
	s := &session{
		id:   id,
		ctl:  ctl,
		rec:  rec,
		subs: make(map[chan game.Event]struct{}),
	}
	if rec != nil {
		ctl.Subscribe(rec.Handle)
	}
	ctl.Subscribe(s.fanout)
	if extra != nil {
		ctl.Subscribe(extra)
	}
	return s
}

// fanout pushes an event to every subscriber. A subscriber that cannot
// keep up loses events rather than blocking the game.
func (s *session) fanout(ev game.Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// subscribe returns a buffered event channel. The caller must
// unsubscribe when done.
func (s *session) subscribe() chan game.Event {
	ch := make(chan game.Event, 64)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
	return ch
}

func (s *session) unsubscribe(ch chan game.Event) {
	s.subMu.Lock()
	delete(s.subs, ch)
	s.subMu.Unlock()
}

// withAI attaches a chooser per the request options.
func (s *session) withAI(opts *AIOptions) {
	if opts == nil || !opts.Enabled {
		return
	}
	cfg := game.AIConfig{Enabled: true, Player: colorFromString(opts.Player), Difficulty: opts.Difficulty}
	if cfg.Difficulty == "" {
		cfg.Difficulty = "normal"
	}
	s.ctl.SetAI(cfg, ai.NewPlayer(ai.ParseDifficulty(cfg.Difficulty)))
}

// sessionManager tracks live sessions by id.
type sessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[string]*session)}
}

func (m *sessionManager) add(s *session) {
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
}

func (m *sessionManager) get(id string) (*session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	return s, ok
}

func (m *sessionManager) remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

func (m *sessionManager) ids() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

func (m *sessionManager) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
