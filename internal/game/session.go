package game

import "log"

// handleIdentify maps a connection to a studio. A display name already
// on file means a reconnect: the whole player record and every
// phase-local structure keyed by the stale connection id move to the
// new id, so the player resumes exactly where they left off. A new name
// creates a fresh studio with the default stake.
func (g *Game) handleIdentify(connID, name string) error {
	if name == "" {
		return reject("identify_rejected", "Studio name is required")
	}

	oldID := ""
	for id, p := range g.state.Players {
		if p.Name == name {
			oldID = id
			break
		}
	}

	if oldID != "" {
		if oldID != connID {
			g.rekeyConnection(oldID, connID)
		}
		p := g.state.Players[connID]
		p.Connected = true
		log.Printf("%s reconnected (old conn %.8s, new conn %.8s)", name, oldID, connID)
	} else {
		g.state.Players[connID] = &Player{
			Name:      name,
			Budget:    g.cfg.StartingBudget,
			Inventory: []Card{},
			Products:  []Product{},
			Connected: true,
		}
		log.Printf("%s joined the game", name)
	}

	g.out.Send(connID, Event{Type: "identified", Payload: map[string]string{"name": name}})
	return nil
}

// rekeyConnection moves a player record, and every phase-local map or
// list that references the stale connection id, under the new id.
// Ledger state lives on the Player itself and moves untouched.
func (g *Game) rekeyConnection(oldID, newID string) {
	st := g.state

	st.Players[newID] = st.Players[oldID]
	delete(st.Players, oldID)

	if prog, ok := st.Naming[oldID]; ok {
		delete(st.Naming, oldID)
		st.Naming[newID] = prog
	}

	if sel, ok := st.Selections[oldID]; ok {
		delete(st.Selections, oldID)
		st.Selections[newID] = sel
	}

	if bw := st.Bidding; bw != nil {
		for i, id := range bw.Participants {
			if id == oldID {
				bw.Participants[i] = newID
			}
		}
		if bid, ok := bw.Bids[oldID]; ok {
			delete(bw.Bids, oldID)
			bw.Bids[newID] = bid
		}
		for _, c := range bw.Queue {
			for i, id := range c.Players {
				if id == oldID {
					c.Players[i] = newID
				}
			}
		}
		for idx, id := range bw.Uncontested {
			if id == oldID {
				bw.Uncontested[idx] = newID
			}
		}
	}

	if aw := st.Awards; aw != nil {
		if vote, ok := aw.Votes[oldID]; ok {
			delete(aw.Votes, oldID)
			aw.Votes[newID] = vote
		}
	}
}
