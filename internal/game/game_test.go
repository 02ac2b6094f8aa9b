package game

import (
	"math/rand"
	"testing"

	"github.com/example/studio-moguls/internal/config"
)

// captureSender records outbound events instead of writing sockets.
type captureSender struct {
	broadcasts []Event
	sent       map[string][]Event
}

func newCaptureSender() *captureSender {
	return &captureSender{sent: make(map[string][]Event)}
}

func (c *captureSender) Broadcast(ev Event) { c.broadcasts = append(c.broadcasts, ev) }

func (c *captureSender) Send(connID string, ev Event) {
	c.sent[connID] = append(c.sent[connID], ev)
}

func connFor(name string) string { return "conn-" + name }

// newTestGame builds a deterministic game with the given studios
// already identified and connected.
func newTestGame(t *testing.T, names ...string) (*Game, *captureSender) {
	t.Helper()
	out := newCaptureSender()
	g := New(config.Default(), out, rand.New(rand.NewSource(1)))
	for _, name := range names {
		if err := g.handleIdentify(connFor(name), name); err != nil {
			t.Fatalf("identify %s: %v", name, err)
		}
	}
	return g, out
}

// startProduction forces the game into a production turn with a fixed
// offer set, bypassing the naming phase. The pool is stocked so later
// turns can draw fresh offers.
func startProduction(g *Game, offers []Card) {
	g.state.Phase = PhaseProduction
	g.state.Cycle = 1
	g.state.Turn = 1
	g.state.Offers = offers
	g.state.Selections = make(map[string]Selection)
	g.state.Bidding = nil
	g.state.Pool = g.state.Pool[:0]
	for i := 0; i < 8; i++ {
		g.state.Pool = append(g.state.Pool, GenerateTalent(g.rng, RolePerformer, "Pool Star"))
	}
}

func testCard(name string, role Role, salary int) Card {
	c := Card{
		Name:           name,
		Role:           role,
		Heat:           100,
		HeatBucket:     heatBucket(100),
		Prestige:       50,
		PrestigeBucket: prestigeBucket(50),
		Salary:         salary,
	}
	switch role {
	case RoleProducer:
		c.Genre = "Action"
	case RoleWriter:
		c.Audience = "Teens"
	}
	return c
}

func selectIndex(t *testing.T, g *Game, name string, idx int) {
	t.Helper()
	if err := g.handleSelectOffer(connFor(name), &idx, false); err != nil {
		t.Fatalf("%s select %d: %v", name, idx, err)
	}
}

func selectPass(t *testing.T, g *Game, name string) {
	t.Helper()
	if err := g.handleSelectOffer(connFor(name), nil, true); err != nil {
		t.Fatalf("%s pass: %v", name, err)
	}
}

func asRejection(t *testing.T, err error, wantEvent string) rejection {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s rejection, got nil", wantEvent)
	}
	rej, ok := err.(rejection)
	if !ok {
		t.Fatalf("expected rejection, got %T: %v", err, err)
	}
	if rej.event != wantEvent {
		t.Fatalf("expected event %s, got %s", wantEvent, rej.event)
	}
	return rej
}
