package game

import "log"

// handleAcknowledgeResults is the generic barrier signal reused across
// every result screen: bidding results, release results, and award
// results. Each player raises the shared ready flag; when every
// connected player has, the flags clear (so the next screen can reuse
// them) and the phase moves on.
func (g *Game) handleAcknowledgeResults(connID string) error {
	st := g.state
	p, err := g.player(connID)
	if err != nil {
		return err
	}

	switch st.Phase {
	case PhaseBiddingResults, PhaseReleases, PhaseAwardResults:
	default:
		return errIgnore
	}

	p.Ready = true
	if !st.allConnectedReady() {
		return nil
	}
	st.clearReady()

	switch st.Phase {
	case PhaseBiddingResults:
		g.continueAfterBiddingResults()
	case PhaseReleases:
		if st.Cycle == 1 {
			st.Cycle = 2
			st.Turn = 1
			st.Phase = PhaseProduction
			st.Fillers = nil
			g.startNewTurn()
			log.Printf("production cycle 2 started")
		} else {
			st.Fillers = nil
			g.setupAwards()
		}
	case PhaseAwardResults:
		st.Phase = PhaseComplete
		log.Printf("game complete")
	}
	return nil
}
