package game

import "testing"

func TestIdentifyNewStudio(t *testing.T) {
	g, out := newTestGame(t, "Alice")

	p := g.state.Players[connFor("Alice")]
	if p == nil {
		t.Fatal("player not created")
	}
	if p.Budget != g.cfg.StartingBudget {
		t.Fatalf("budget %d, want %d", p.Budget, g.cfg.StartingBudget)
	}
	if !p.Connected {
		t.Fatal("new player should be connected")
	}
	if len(p.Inventory) != 0 || len(p.Products) != 0 {
		t.Fatal("new player should start empty-handed")
	}

	evs := out.sent[connFor("Alice")]
	if len(evs) == 0 || evs[len(evs)-1].Type != "identified" {
		t.Fatalf("expected an identified event, got %v", evs)
	}
}

func TestIdentifyRequiresName(t *testing.T) {
	g, _ := newTestGame(t)
	asRejection(t, g.handleIdentify("conn-x", ""), "identify_rejected")
}

func TestReconnectPreservesLedger(t *testing.T) {
	g, _ := newTestGame(t, "Alice", "Bob")
	p := g.state.Players[connFor("Alice")]
	p.Budget = 42
	p.Score = 7
	p.Inventory = []Card{testCard("Star", RolePerformer, 20)}
	p.Products = []Product{{Title: "Early Hit", Released: true, BoxOffice: 30}}

	g.handleDisconnect(connFor("Alice"))
	if p.Connected {
		t.Fatal("disconnect should clear the connected flag")
	}

	if err := g.handleIdentify("conn-new", "Alice"); err != nil {
		t.Fatalf("reconnect: %v", err)
	}

	if g.state.Players[connFor("Alice")] != nil {
		t.Fatal("stale connection id still maps to the player")
	}
	got := g.state.Players["conn-new"]
	if got != p {
		t.Fatal("reconnect should reuse the same player record")
	}
	if !got.Connected {
		t.Fatal("reconnect should restore the connected flag")
	}
	if got.Budget != 42 || got.Score != 7 || len(got.Inventory) != 1 || len(got.Products) != 1 {
		t.Fatalf("ledger changed across reconnect: %+v", got)
	}
}

func TestReconnectRekeysPhaseState(t *testing.T) {
	g, _ := newTestGame(t, "Alice", "Bob", "Carol")
	startProduction(g, standardOffers())

	// Alice and Bob contest offer 0, Carol takes 1 uncontested.
	selectIndex(t, g, "Alice", 0)
	selectIndex(t, g, "Bob", 0)
	selectIndex(t, g, "Carol", 1)

	if g.state.Phase != PhaseBidding {
		t.Fatalf("phase %s, want bidding", g.state.Phase)
	}
	submitBid(t, g, "Alice", 5)

	g.handleDisconnect(connFor("Alice"))
	if err := g.handleIdentify("conn-new", "Alice"); err != nil {
		t.Fatalf("reconnect: %v", err)
	}

	bw := g.state.Bidding
	for _, id := range bw.Participants {
		if id == connFor("Alice") {
			t.Fatal("stale id left in bidding participants")
		}
	}
	if bid, ok := bw.Bids["conn-new"]; !ok || bid != 5 {
		t.Fatalf("bid did not follow the reconnect: %v %v", bid, ok)
	}
	if _, ok := g.state.Selections["conn-new"]; !ok {
		t.Fatal("selection did not follow the reconnect")
	}
	if _, stale := g.state.Selections[connFor("Alice")]; stale {
		t.Fatal("stale selection entry left behind")
	}

	// Bob can still settle the war addressed to the rekeyed player.
	submitBid(t, g, "Bob", 3)
	if g.state.Phase != PhaseBiddingResults {
		t.Fatalf("phase %s, want bidding results", g.state.Phase)
	}
	if g.state.Players["conn-new"].Budget != 100-20-5 {
		t.Fatalf("rekeyed winner budget %d, want 75", g.state.Players["conn-new"].Budget)
	}
}

func TestUnknownDisconnectIgnored(t *testing.T) {
	g, _ := newTestGame(t, "Alice")
	g.handleDisconnect("conn-stranger")
	if !g.state.Players[connFor("Alice")].Connected {
		t.Fatal("unrelated disconnect touched another player")
	}
}
