package game

import (
	"fmt"
	"log"
	"sort"
)

// startNewTurn draws a fresh offer set and clears per-turn state. The
// offer set is sized to the connected player count plus one freshly
// generated producer.
func (g *Game) startNewTurn() {
	st := g.state
	st.Selections = make(map[string]Selection)
	st.Bidding = nil
	st.Offers = drawOffers(g.rng, st.Pool, st.connectedCount())
	log.Printf("turn %d (cycle %d): %d cards on offer", st.Turn, st.Cycle, len(st.Offers))
}

// handleSelectOffer records one player's pick for the turn: an offer
// index or an explicit pass. A completed selection set triggers
// resolution synchronously, within this same command.
func (g *Game) handleSelectOffer(connID string, index *int, pass bool) error {
	st := g.state
	if st.Phase != PhaseProduction {
		return reject("selection_rejected", "Hiring is not open right now")
	}
	p, err := g.player(connID)
	if err != nil {
		return err
	}
	if _, dup := st.Selections[connID]; dup {
		return reject("selection_rejected", "You have already made your selection for this turn")
	}

	if pass {
		st.Selections[connID] = Selection{Pass: true}
		log.Printf("%s passed", p.Name)
	} else {
		if index == nil || *index < 0 || *index >= len(st.Offers) {
			return reject("selection_rejected", "Invalid card selection")
		}
		card := st.Offers[*index]
		if !p.CanAfford(card.Salary) {
			return reject("selection_rejected", fmt.Sprintf("Can't afford %s ($%dM)", card.Name, card.Salary))
		}
		st.Selections[connID] = Selection{Index: *index}
		log.Printf("%s selected card %d: %s ($%dM)", p.Name, *index, card.Name, card.Salary)
	}

	if g.selectionsComplete() {
		g.resolveSelections()
	}
	return nil
}

// selectionsComplete reports whether every connected player has a
// selection record this turn.
func (g *Game) selectionsComplete() bool {
	st := g.state
	if st.connectedCount() == 0 {
		return false
	}
	for id, p := range st.Players {
		if !p.Connected {
			continue
		}
		if _, ok := st.Selections[id]; !ok {
			return false
		}
	}
	return true
}

// resolveSelections groups non-pass picks by offer index. Singleton
// groups are uncontested awards; larger groups become a FIFO conflict
// queue handed to the bidding arbiter. When no conflicts exist the
// awards land immediately and the turn advances.
func (g *Game) resolveSelections() {
	st := g.state

	groups := make(map[int][]string)
	for connID, sel := range st.Selections {
		if !sel.Pass {
			groups[sel.Index] = append(groups[sel.Index], connID)
		}
	}

	indices := make([]int, 0, len(groups))
	for idx := range groups {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	uncontested := make(map[int]string)
	var conflicts []conflict
	for _, idx := range indices {
		players := groups[idx]
		if len(players) > 1 {
			sort.Strings(players)
			conflicts = append(conflicts, conflict{Index: idx, Players: players})
		} else {
			uncontested[idx] = players[0]
		}
	}

	if len(conflicts) > 0 {
		log.Printf("turn %d: %d bidding war(s) detected", st.Turn, len(conflicts))
		st.Bidding = &BiddingWar{
			Queue:       conflicts,
			Uncontested: uncontested,
			Bids:        make(map[string]int),
		}
		g.startNextBiddingWar()
		return
	}

	g.awardUncontested(uncontested)
	g.advanceTurn()
}

// awardUncontested debits and delivers every singleton pick, in offer
// order for determinism.
func (g *Game) awardUncontested(uncontested map[int]string) {
	indices := make([]int, 0, len(uncontested))
	for idx := range uncontested {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		g.awardCard(uncontested[idx], idx, 0)
	}
}

// awardCard hands the offer at idx to a player for salary plus any
// winning bid. Affordability is re-checked at this moment: an earlier
// bidding award in the same turn may have drained the budget since the
// selection was validated.
func (g *Game) awardCard(connID string, idx, extraBid int) {
	st := g.state
	p, ok := st.Players[connID]
	if !ok || idx < 0 || idx >= len(st.Offers) {
		return
	}
	card := st.Offers[idx]
	totalCost := card.Salary + extraBid
	if !p.DebitAndAward(card, totalCost) {
		log.Printf("%s can no longer afford %s ($%dM), award skipped", p.Name, card.Name, totalCost)
		return
	}
	log.Printf("awarded %s to %s for $%dM (budget now $%dM)", card.Name, p.Name, totalCost, p.Budget)
}

// advanceTurn moves to the next hiring turn, or into packaging once the
// cycle's turn budget is spent. Entering packaging grants the shared
// filler set.
func (g *Game) advanceTurn() {
	st := g.state
	st.Turn++
	if st.Turn <= g.cfg.TurnsPerCycle {
		g.startNewTurn()
		return
	}

	st.Phase = PhasePackaging
	st.Offers = nil
	st.Selections = make(map[string]Selection)
	st.Bidding = nil
	st.Fillers = FillerSet()
	log.Printf("cycle %d production complete, packaging phase", st.Cycle)
}
