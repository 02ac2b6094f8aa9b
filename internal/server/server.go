// Package server is the websocket transport for the game: it upgrades
// connections, feeds inbound messages to the game's command loop, and
// delivers broadcasts and targeted events back out.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/example/studio-moguls/internal/game"
)

// Message is the client-to-server envelope.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// conn wraps a websocket with a write guard. Reads happen only on the
// connection's own read loop; writes come from the game's command
// goroutine.
type conn struct {
	id string
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

// GameServer owns the connection registry and the game.
type GameServer struct {
	game     *game.Game
	upgrader websocket.Upgrader
	conns    map[string]*conn
	connsMu  sync.RWMutex
}

func NewGameServer() *GameServer {
	return &GameServer{
		conns: make(map[string]*conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// SetGame wires the game in after construction; the game needs the
// server as its Sender, so the two are created in sequence.
func (gs *GameServer) SetGame(g *game.Game) { gs.game = g }

// Broadcast implements game.Sender: every live connection gets the
// event. Write failures just log; the read loop notices the dead
// socket and unregisters it.
func (gs *GameServer) Broadcast(ev game.Event) {
	gs.connsMu.RLock()
	targets := make([]*conn, 0, len(gs.conns))
	for _, c := range gs.conns {
		targets = append(targets, c)
	}
	gs.connsMu.RUnlock()

	for _, c := range targets {
		if err := c.writeJSON(ev); err != nil {
			log.Printf("broadcast to %.8s failed: %v", c.id, err)
		}
	}
}

// Send implements game.Sender for targeted events (acks, rejections,
// snapshot replies).
func (gs *GameServer) Send(connID string, ev game.Event) {
	gs.connsMu.RLock()
	c := gs.conns[connID]
	gs.connsMu.RUnlock()
	if c == nil {
		return
	}
	if err := c.writeJSON(ev); err != nil {
		log.Printf("send to %.8s failed: %v", connID, err)
	}
}

// HandleWS upgrades the request and runs the connection's read loop.
func (gs *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := gs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	c := &conn{id: uuid.NewString(), ws: ws}

	gs.connsMu.Lock()
	gs.conns[c.id] = c
	gs.connsMu.Unlock()

	go gs.readLoop(c)
}

func (gs *GameServer) readLoop(c *conn) {
	defer func() {
		c.ws.Close()
		gs.connsMu.Lock()
		delete(gs.conns, c.id)
		gs.connsMu.Unlock()
		gs.game.Disconnect(c.id)
	}()

	for {
		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read from %.8s: %v", c.id, err)
			}
			return
		}
		payload := msg.Payload
		if payload == nil {
			payload = json.RawMessage("{}")
		}
		gs.game.Dispatch(c.id, msg.Type, payload)
	}
}
