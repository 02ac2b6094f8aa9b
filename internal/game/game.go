// Package game implements the authoritative Studio Moguls game state
// and its phase/turn state machine. All state lives behind a single
// run-to-completion command loop: the transport posts one command per
// inbound client message, each command runs atomically, and one full
// state snapshot is broadcast at the end of each accepted command.
package game

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"strings"

	"github.com/example/studio-moguls/internal/config"
)

// Event is the server-to-client message envelope.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Sender delivers events to clients. The transport implements it; the
// game never touches sockets directly.
type Sender interface {
	Broadcast(ev Event)
	Send(connID string, ev Event)
}

// rejection is a validation failure reported back to the originating
// client as a named *_rejected event. State is unchanged when one is
// returned.
type rejection struct {
	event  string
	reason string
}

func (r rejection) Error() string { return r.reason }

func reject(event, reason string) error {
	return rejection{event: event, reason: reason}
}

// errIgnore marks messages that are dropped without a reply: stale
// connection ids, acks in phases with nothing to acknowledge, host
// intents out of order. Deliberate no-ops, not errors.
var errIgnore = errors.New("ignored")

// Game owns a State and processes commands one at a time.
type Game struct {
	cfg   config.Config
	rng   *rand.Rand
	state *State
	out   Sender
	cmds  chan func()
}

// New creates a game. The rng is injected so tests can run
// deterministically; cmd/server seeds one from crypto/rand.
func New(cfg config.Config, out Sender, rng *rand.Rand) *Game {
	return &Game{
		cfg:   cfg,
		rng:   rng,
		state: newState(),
		out:   out,
		cmds:  make(chan func(), 64),
	}
}

// Run consumes commands until the context is cancelled. It is the only
// goroutine that reads or writes g.state.
func (g *Game) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-g.cmds:
			cmd()
		}
	}
}

// Dispatch posts an inbound client message to the command loop.
func (g *Game) Dispatch(connID, msgType string, payload json.RawMessage) {
	g.cmds <- func() { g.handle(connID, msgType, payload) }
}

// Disconnect posts a connection-loss notice. Player state is preserved
// for reconnection; only the connected flag drops.
func (g *Game) Disconnect(connID string) {
	g.cmds <- func() { g.handleDisconnect(connID) }
}

// handle runs one client message to completion. A nil return means
// state changed and everyone gets a snapshot; a rejection goes back to
// the sender only; errIgnore drops the message silently.
func (g *Game) handle(connID, msgType string, payload json.RawMessage) {
	err := g.route(connID, msgType, payload)
	switch {
	case err == nil:
		g.broadcastState()
	case errors.Is(err, errIgnore):
	default:
		var rej rejection
		if errors.As(err, &rej) {
			log.Printf("rejected %s from %s: %s", msgType, connID, rej.reason)
			g.out.Send(connID, Event{Type: rej.event, Payload: map[string]string{"message": rej.reason}})
			return
		}
		log.Printf("dropping %s from %s: %v", msgType, connID, err)
	}
}

func (g *Game) route(connID, msgType string, payload json.RawMessage) error {
	switch msgType {
	case "identify":
		var data struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(payload, &data); err != nil {
			return err
		}
		return g.handleIdentify(connID, strings.TrimSpace(data.Name))
	case "begin_naming_phase":
		return g.handleBeginNaming()
	case "submit_named_entity":
		var data struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(payload, &data); err != nil {
			return err
		}
		return g.handleSubmitName(connID, strings.TrimSpace(data.Name))
	case "begin_production_phase":
		return g.handleBeginProduction()
	case "select_offer":
		var data struct {
			Index *int `json:"index"`
			Pass  bool `json:"pass"`
		}
		if err := json.Unmarshal(payload, &data); err != nil {
			return err
		}
		return g.handleSelectOffer(connID, data.Index, data.Pass)
	case "submit_bid":
		var data struct {
			Amount int `json:"amount"`
		}
		if err := json.Unmarshal(payload, &data); err != nil {
			return err
		}
		return g.handleSubmitBid(connID, data.Amount)
	case "acknowledge_results":
		return g.handleAcknowledgeResults(connID)
	case "commit_package":
		var data struct {
			Cards []CardRef `json:"cards"`
			Title string    `json:"title"`
			Blurb string    `json:"blurb"`
		}
		if err := json.Unmarshal(payload, &data); err != nil {
			return err
		}
		return g.handleCommitPackage(connID, data.Cards, strings.TrimSpace(data.Title), strings.TrimSpace(data.Blurb))
	case "finish_packaging":
		return g.handleFinishPackaging(connID)
	case "submit_vote":
		var data struct {
			NomineeIndex int `json:"nominee_index"`
		}
		if err := json.Unmarshal(payload, &data); err != nil {
			return err
		}
		return g.handleSubmitVote(connID, data.NomineeIndex)
	case "request_snapshot":
		g.out.Send(connID, Event{Type: "state_snapshot", Payload: g.snapshot()})
		return errIgnore
	default:
		log.Printf("unknown message type %q from %s", msgType, connID)
		return errIgnore
	}
}

// player looks up the player behind a connection. Missing ids are
// stale/late messages; callers propagate errIgnore.
func (g *Game) player(connID string) (*Player, error) {
	p, ok := g.state.Players[connID]
	if !ok {
		return nil, errIgnore
	}
	return p, nil
}

func (g *Game) handleDisconnect(connID string) {
	p, ok := g.state.Players[connID]
	if !ok {
		return
	}
	p.Connected = false
	log.Printf("%s disconnected, state preserved for reconnect", p.Name)
	g.broadcastState()
}

func (g *Game) broadcastState() {
	g.out.Broadcast(Event{Type: "state_snapshot", Payload: g.snapshot()})
}
