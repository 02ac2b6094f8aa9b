package game

import (
	"fmt"
	"log"
	"slices"
	"sort"
)

// startNextBiddingWar opens the session for the head of the conflict
// queue, or, when the queue has drained, awards the uncontested picks
// and advances the turn. Sessions run one at a time so each bid is
// judged against the budget as it stands after the previous award —
// never against money already committed elsewhere.
func (g *Game) startNextBiddingWar() {
	st := g.state
	bw := st.Bidding

	if len(bw.Queue) == 0 {
		log.Printf("all bidding wars resolved")
		uncontested := bw.Uncontested
		st.Bidding = nil
		st.Phase = PhaseProduction
		g.awardUncontested(uncontested)
		g.advanceTurn()
		return
	}

	next := bw.Queue[0]
	bw.Queue = bw.Queue[1:]

	bw.Active = true
	bw.CardIndex = next.Index
	bw.Card = st.Offers[next.Index]
	bw.Participants = next.Players
	bw.Bids = make(map[string]int)
	st.Phase = PhaseBidding

	log.Printf("bidding war for %s: %d studios contesting", bw.Card.Name, len(bw.Participants))
}

// handleSubmitBid records one participant's sealed bid. The full cost —
// base salary plus bid — must be affordable up front. The last bid in
// triggers resolution synchronously.
func (g *Game) handleSubmitBid(connID string, amount int) error {
	st := g.state
	bw := st.Bidding
	if st.Phase != PhaseBidding || bw == nil || !bw.Active {
		return reject("bid_rejected", "No active bidding war")
	}
	p, err := g.player(connID)
	if err != nil {
		return err
	}
	if !slices.Contains(bw.Participants, connID) {
		return reject("bid_rejected", "You are not a participant in this bidding war")
	}
	if _, dup := bw.Bids[connID]; dup {
		return reject("bid_rejected", "You have already submitted your bid")
	}
	if amount < 0 {
		return reject("bid_rejected", "Bid cannot be negative")
	}
	totalCost := bw.Card.Salary + amount
	if !p.CanAfford(totalCost) {
		return reject("bid_rejected", fmt.Sprintf("Cannot afford: total cost $%dM, your budget $%dM", totalCost, p.Budget))
	}

	bw.Bids[connID] = amount
	log.Printf("%s bid $%dM for %s (total $%dM)", p.Name, amount, bw.Card.Name, totalCost)

	if len(bw.Bids) == len(bw.Participants) {
		g.resolveBiddingWar()
	}
	return nil
}

// resolveBiddingWar finds the strictly highest bid. A unique maximum
// wins the card at salary plus bid; a tie at the maximum means nobody
// gets the card and nobody pays — the deterrent against collusive
// bidding. Either way the session parks on the results screen until
// every connected player acknowledges.
func (g *Game) resolveBiddingWar() {
	st := g.state
	bw := st.Bidding

	maxBid := -1
	for _, bid := range bw.Bids {
		if bid > maxBid {
			maxBid = bid
		}
	}
	var winners []string
	for connID, bid := range bw.Bids {
		if bid == maxBid {
			winners = append(winners, connID)
		}
	}
	sort.Strings(winners)

	if len(winners) == 1 {
		winner := winners[0]
		log.Printf("bidding war for %s won at $%dM over salary", bw.Card.Name, maxBid)
		g.awardCard(winner, bw.CardIndex, maxBid)
	} else {
		log.Printf("bidding war for %s tied at $%dM, nobody wins", bw.Card.Name, maxBid)
	}

	bw.Active = false
	st.Phase = PhaseBiddingResults
}

// continueAfterBiddingResults runs once the results barrier clears:
// next queued conflict, or uncontested awards and turn advance.
func (g *Game) continueAfterBiddingResults() {
	g.state.Phase = PhaseProduction
	g.startNextBiddingWar()
}
