package game

// The snapshot is the single canonical push: the entire game state,
// re-sent to every client after each accepted command. Clients render
// from it alone and keep no authoritative state of their own.
// Everything is keyed by durable studio name; connection ids never
// leave the server.

type Snapshot struct {
	Phase      Phase                      `json:"phase"`
	Cycle      int                        `json:"cycle"`
	Turn       int                        `json:"turn"`
	Players    map[string]PlayerView      `json:"players"`
	Pool       []Card                     `json:"pool"`
	Naming     map[string]*NamingProgress `json:"naming,omitempty"`
	Offers     []Card                     `json:"offers,omitempty"`
	Selections map[string]Selection       `json:"selections,omitempty"`
	Bidding    *BiddingView               `json:"bidding,omitempty"`
	Fillers    []Card                     `json:"fillers,omitempty"`
	Awards     *AwardsView                `json:"awards,omitempty"`
}

type PlayerView struct {
	Budget    int       `json:"budget"`
	Score     int       `json:"score"`
	Inventory []Card    `json:"inventory"`
	Products  []Product `json:"products"`
	Ready     bool      `json:"ready"`
	Connected bool      `json:"connected"`
}

type BiddingView struct {
	Active       bool           `json:"active"`
	CardIndex    int            `json:"card_index"`
	Card         Card           `json:"card"`
	Participants []string       `json:"participants"`
	Bids         map[string]int `json:"bids"`
	PendingWars  int            `json:"pending_wars"`
}

type AwardsView struct {
	Nominees []Nominee      `json:"nominees"`
	Votes    map[string]int `json:"votes"`
	Winner   *Nominee       `json:"winner,omitempty"`
}

// snapshot builds the full-state view, translating every connection-id
// key to the player's durable name.
func (g *Game) snapshot() Snapshot {
	st := g.state

	nameOf := func(connID string) string {
		if p, ok := st.Players[connID]; ok {
			return p.Name
		}
		return ""
	}

	snap := Snapshot{
		Phase:   st.Phase,
		Cycle:   st.Cycle,
		Turn:    st.Turn,
		Players: make(map[string]PlayerView, len(st.Players)),
		Pool:    st.Pool,
		Offers:  st.Offers,
		Fillers: st.Fillers,
	}

	for _, p := range st.Players {
		snap.Players[p.Name] = PlayerView{
			Budget:    p.Budget,
			Score:     p.Score,
			Inventory: p.Inventory,
			Products:  p.Products,
			Ready:     p.Ready,
			Connected: p.Connected,
		}
	}

	if len(st.Naming) > 0 {
		snap.Naming = make(map[string]*NamingProgress, len(st.Naming))
		for connID, prog := range st.Naming {
			if name := nameOf(connID); name != "" {
				snap.Naming[name] = prog
			}
		}
	}

	if len(st.Selections) > 0 {
		snap.Selections = make(map[string]Selection, len(st.Selections))
		for connID, sel := range st.Selections {
			if name := nameOf(connID); name != "" {
				snap.Selections[name] = sel
			}
		}
	}

	if bw := st.Bidding; bw != nil {
		view := &BiddingView{
			Active:      bw.Active,
			CardIndex:   bw.CardIndex,
			Card:        bw.Card,
			Bids:        make(map[string]int, len(bw.Bids)),
			PendingWars: len(bw.Queue),
		}
		for _, connID := range bw.Participants {
			view.Participants = append(view.Participants, nameOf(connID))
		}
		for connID, bid := range bw.Bids {
			if name := nameOf(connID); name != "" {
				view.Bids[name] = bid
			}
		}
		snap.Bidding = view
	}

	if aw := st.Awards; aw != nil {
		view := &AwardsView{
			Nominees: aw.Nominees,
			Votes:    make(map[string]int, len(aw.Votes)),
			Winner:   aw.Winner,
		}
		for connID, vote := range aw.Votes {
			if name := nameOf(connID); name != "" {
				view.Votes[name] = vote
			}
		}
		snap.Awards = view
	}

	return snap
}
