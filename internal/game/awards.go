package game

import (
	"log"
	"sort"
)

// minNominees is the floor below which award season is skipped
// entirely and the game goes straight to the final standings.
const minNominees = 2

// setupAwards nominates every released film for Best Picture. Nominees
// are ordered by studio name then by commit order so the ballot is
// stable across snapshots.
func (g *Game) setupAwards() {
	st := g.state

	names := make([]string, 0, len(st.Players))
	byName := make(map[string]*Player, len(st.Players))
	for _, p := range st.Players {
		names = append(names, p.Name)
		byName[p.Name] = p
	}
	sort.Strings(names)

	var nominees []Nominee
	for _, name := range names {
		for _, f := range byName[name].Products {
			nominees = append(nominees, Nominee{
				Title:     f.Title,
				Studio:    name,
				Genre:     f.Genre,
				Audience:  f.Audience,
				Heat:      f.Heat,
				BoxOffice: f.BoxOffice,
			})
		}
	}

	if len(nominees) < minNominees {
		log.Printf("only %d film(s) made, skipping award season", len(nominees))
		st.Phase = PhaseComplete
		return
	}

	st.Awards = &Awards{
		Nominees: nominees,
		Votes:    make(map[string]int),
	}
	st.Phase = PhaseAwardVoting
	log.Printf("award season: %d nominees for Best Picture", len(nominees))
}

// handleSubmitVote records one player's Best Picture ballot. Voting for
// your own film is rejected. The last connected voter triggers the
// count synchronously.
func (g *Game) handleSubmitVote(connID string, nomineeIndex int) error {
	st := g.state
	if st.Phase != PhaseAwardVoting || st.Awards == nil {
		return reject("vote_rejected", "Voting is not open right now")
	}
	p, err := g.player(connID)
	if err != nil {
		return err
	}
	aw := st.Awards
	if nomineeIndex < 0 || nomineeIndex >= len(aw.Nominees) {
		return reject("vote_rejected", "Invalid nominee selection")
	}
	if aw.Nominees[nomineeIndex].Studio == p.Name {
		return reject("vote_rejected", "Cannot vote for your own film")
	}

	aw.Votes[connID] = nomineeIndex
	log.Printf("%s voted for %q", p.Name, aw.Nominees[nomineeIndex].Title)

	if g.votesComplete() {
		g.calculateAwardWinner()
	}
	return nil
}

func (g *Game) votesComplete() bool {
	st := g.state
	if st.connectedCount() == 0 {
		return false
	}
	for id, p := range st.Players {
		if !p.Connected {
			continue
		}
		if _, ok := st.Awards.Votes[id]; !ok {
			return false
		}
	}
	return true
}

// calculateAwardWinner counts the ballots. Most votes wins; ties break
// on box office, then on ballot order, so the result is always total.
// The winning studio collects the award points.
func (g *Game) calculateAwardWinner() {
	st := g.state
	aw := st.Awards

	counts := make(map[int]int)
	for _, idx := range aw.Votes {
		counts[idx]++
	}

	best := -1
	for idx := range aw.Nominees {
		if best == -1 {
			best = idx
			continue
		}
		switch {
		case counts[idx] > counts[best]:
			best = idx
		case counts[idx] == counts[best] && aw.Nominees[idx].BoxOffice > aw.Nominees[best].BoxOffice:
			best = idx
		}
	}

	winner := aw.Nominees[best]
	aw.Winner = &winner
	for _, p := range st.Players {
		if p.Name == winner.Studio {
			p.Score += g.cfg.AwardPoints
			log.Printf("Best Picture: %q (%s), +%d points", winner.Title, winner.Studio, g.cfg.AwardPoints)
			break
		}
	}

	st.Phase = PhaseAwardResults
}
