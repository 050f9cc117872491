package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/yourusername/bggame/pkg/ai"
	"github.com/yourusername/bggame/pkg/engine"
	"github.com/yourusername/bggame/pkg/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a client command over the game socket.
type WSMessage struct {
	Type    string          `json:"type"`    // Command: "roll", "move", "undo", ...
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a server message: a command result, a pushed game
// event, or an error.
type WSResponse struct {
	Type    string      `json:"type"`              // "result", "event", "error", "pong"
	ID      string      `json:"id,omitempty"`      // Request ID, empty on pushed events
	Event   string      `json:"event,omitempty"`   // Event kind on pushed events
	Payload interface{} `json:"payload,omitempty"` // Response data
	Error   string      `json:"error,omitempty"`   // Error message if any
}

// WSClient is one connected socket, bound to a single game session.
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	session  *session
	sendChan chan WSResponse
	done     chan struct{}
}

// GameSocket handles GET /api/v1/games/{id}/ws: a WebSocket carrying
// game commands one way and game events the other.
func (h *Handlers) GameSocket(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade", "error", err)
		return
	}
	client := &WSClient{
		conn:     conn,
		handlers: h,
		session:  s,
		sendChan: make(chan WSResponse, 256),
		done:     make(chan struct{}),
	}
	go client.writePump()
	go client.eventPump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.sendChan:
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}

// eventPump forwards the session's event stream into the socket until
// the reader exits.
func (c *WSClient) eventPump() {
	ch := c.session.subscribe()
	defer c.session.unsubscribe(ch)
	for {
		select {
		case <-c.done:
			return
		case ev := <-ch:
			c.send(WSResponse{Type: "event", Event: string(ev.Kind()), Payload: ev})
		}
	}
}

// send drops the message if the writer has fallen behind rather than
// blocking the event pump.
func (c *WSClient) send(msg WSResponse) {
	select {
	case c.sendChan <- msg:
	default:
	}
}

func (c *WSClient) readPump() {
	defer func() {
		close(c.done)
		c.conn.Close()
	}()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "roll":
		var req RollRequest
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				c.send(WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"})
				return
			}
		}
		c.command(msg.ID, func() ([]game.Event, error) { return c.session.ctl.RollDice(req.Dice...) })
	case "move":
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			c.send(WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"})
			return
		}
		c.command(msg.ID, func() ([]game.Event, error) { return c.session.ctl.RequestMove(req.From, req.To) })
	case "undo":
		c.command(msg.ID, c.session.ctl.UndoMove)
	case "end_turn":
		c.command(msg.ID, c.session.ctl.EndTurn)
	case "new_game":
		c.command(msg.ID, c.session.ctl.NewGame)
	case "double":
		c.command(msg.ID, c.session.ctl.OfferDouble)
	case "accept":
		c.command(msg.ID, c.session.ctl.AcceptDouble)
	case "decline":
		c.command(msg.ID, c.session.ctl.DeclineDouble)
	case "ai_turn":
		c.command(msg.ID, c.session.ctl.PlayAITurn)
	case "state":
		c.session.mu.Lock()
		resp := c.handlers.gameResponse(c.session, nil)
		c.session.mu.Unlock()
		c.send(WSResponse{Type: "result", ID: msg.ID, Payload: resp})
	case "legal_moves":
		c.session.mu.Lock()
		moves := c.session.ctl.LegalMoves()
		c.session.mu.Unlock()
		if moves == nil {
			moves = []engine.Move{}
		}
		c.send(WSResponse{Type: "result", ID: msg.ID, Payload: moves})
	case "hint":
		c.handleHint(msg)
	case "ping":
		c.send(WSResponse{Type: "pong", ID: msg.ID})
	default:
		c.send(WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type"})
	}
}

// command runs one controller command under the session lock and sends
// the result. Pushed events arrive separately through the event pump.
func (c *WSClient) command(id string, fn func() ([]game.Event, error)) {
	c.session.mu.Lock()
	events, err := fn()
	if err != nil {
		c.session.mu.Unlock()
		c.send(WSResponse{Type: "error", ID: id, Error: err.Error()})
		return
	}
	resp := c.handlers.gameResponse(c.session, events)
	c.session.mu.Unlock()
	c.send(WSResponse{Type: "result", ID: id, Payload: resp})
}

func (c *WSClient) handleHint(msg WSMessage) {
	h := c.handlers
	if !h.pool.TryAcquire(LaneAI) {
		c.send(WSResponse{Type: "error", ID: msg.ID, Error: "server busy"})
		return
	}
	defer h.pool.Release(LaneAI)

	player := ai.NewPlayer(ai.ParseDifficulty(h.defaults.AIDifficulty))
	c.session.mu.Lock()
	board := c.session.ctl.BoardSnapshot()
	c.session.mu.Unlock()

	ranked := player.RankMoves(board)
	c.send(WSResponse{Type: "result", ID: msg.ID, Payload: HintResponse{
		Moves:    rankedDTOs(ranked),
		Phase:    ai.ClassifyPhase(board, board.Player).String(),
		Pattern:  ai.ClassifyPattern(board, board.Player).String(),
		NumLegal: len(ranked),
	}})
}
