package game

import (
	"fmt"
	"log"
	"sort"
)

// CardRef addresses one card in a package submission: either an index
// into the player's inventory, or one of the shared filler templates by
// role. The two arms are explicit so no sentinel index encoding leaks
// into the protocol.
type CardRef struct {
	Filler bool `json:"filler,omitempty"`
	Role   Role `json:"role,omitempty"`
	Index  int  `json:"index"`
}

// validatePackage checks role completeness: a producer, a writer, a
// director and at least one performer. Extra copies of any role are
// tolerated.
func validatePackage(cards []Card) bool {
	have := make(map[Role]bool)
	for _, c := range cards {
		have[c.Role] = true
	}
	return have[RoleProducer] && have[RoleWriter] && have[RoleDirector] && have[RolePerformer]
}

// handleCommitPackage greenlights a film from the referenced cards.
// Validation happens before any mutation; a failed package leaves the
// inventory untouched. On success the product is appended and only the
// real (non-filler) constituents leave the inventory, preserving the
// order of what remains.
func (g *Game) handleCommitPackage(connID string, refs []CardRef, title, blurb string) error {
	st := g.state
	if st.Phase != PhasePackaging {
		return reject("package_rejected", "Packaging is not open right now")
	}
	p, err := g.player(connID)
	if err != nil {
		return err
	}
	if title == "" {
		return reject("package_rejected", "Film title is required")
	}

	cards := make([]Card, 0, len(refs))
	usedOwned := make(map[int]bool)
	var ownedIndices []int
	for _, ref := range refs {
		if ref.Filler {
			filler, ok := fillerByRole(st.Fillers, ref.Role)
			if !ok {
				return reject("package_rejected", fmt.Sprintf("No filler talent for role %q", ref.Role))
			}
			cards = append(cards, filler)
			continue
		}
		if ref.Index < 0 || ref.Index >= len(p.Inventory) {
			return reject("package_rejected", "Invalid card selection")
		}
		if usedOwned[ref.Index] {
			return reject("package_rejected", "The same card cannot appear twice in a package")
		}
		usedOwned[ref.Index] = true
		ownedIndices = append(ownedIndices, ref.Index)
		cards = append(cards, p.Inventory[ref.Index])
	}

	if !validatePackage(cards) {
		return reject("package_rejected", "Invalid package: need producer, writer, director, and performer")
	}

	totalHeat := 0
	totalPrestige := 0
	genre, audience := "Unknown", "Unknown"
	for _, c := range cards {
		totalHeat += c.Heat
		totalPrestige += c.Prestige
		if c.Role == RoleProducer && genre == "Unknown" && c.Genre != "" {
			genre = c.Genre
		}
		if c.Role == RoleWriter && audience == "Unknown" && c.Audience != "" {
			audience = c.Audience
		}
	}
	if blurb == "" {
		blurb = fmt.Sprintf("A %s film for %s", genre, audience)
	}

	p.Products = append(p.Products, Product{
		Title:    title,
		Blurb:    blurb,
		Cards:    cards,
		Heat:     totalHeat,
		Prestige: totalPrestige / len(cards),
		Genre:    genre,
		Audience: audience,
	})

	// Remove consumed cards highest-index first so the remaining
	// indices stay valid mid-removal.
	sort.Sort(sort.Reverse(sort.IntSlice(ownedIndices)))
	for _, idx := range ownedIndices {
		p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)
	}

	log.Printf("%s greenlit %q (heat %d, prestige %d)", p.Name, title, totalHeat, totalPrestige/len(cards))
	return nil
}

func fillerByRole(fillers []Card, role Role) (Card, bool) {
	for _, f := range fillers {
		if f.Role == role {
			return f, true
		}
	}
	return Card{}, false
}

// handleFinishPackaging releases a player's remaining unpackaged talent
// for half salary, marks them ready, and moves to the release stage
// once every connected player is done.
func (g *Game) handleFinishPackaging(connID string) error {
	st := g.state
	if st.Phase != PhasePackaging {
		return reject("package_rejected", "Packaging is not open right now")
	}
	p, err := g.player(connID)
	if err != nil {
		return err
	}

	if len(p.Inventory) > 0 {
		refund := 0
		for _, c := range p.Inventory {
			refund += c.Salary
		}
		refund /= 2
		p.Credit(refund)
		log.Printf("%s released %d roles for $%dM", p.Name, len(p.Inventory), refund)
		p.Inventory = []Card{}
	}
	p.Ready = true

	if st.allConnectedReady() {
		st.clearReady()
		st.Phase = PhaseReleases
		g.evaluateReleases()
	}
	return nil
}

// evaluateReleases computes the box-office yield for every committed
// product that does not have one yet: a uniform multiplier percent
// applied to the film's heat, credited to both budget and score.
// Products already released are never recomputed, so calling this a
// second time is a no-op.
func (g *Game) evaluateReleases() {
	for _, p := range g.state.Players {
		for i := range p.Products {
			f := &p.Products[i]
			if f.Released {
				continue
			}
			f.Multiplier = randRange(g.rng, g.cfg.MultiplierMinPct, g.cfg.MultiplierMaxPct)
			f.BoxOffice = f.Heat * f.Multiplier / 100
			f.Released = true
			p.Credit(f.BoxOffice)
			p.Score += f.BoxOffice
			log.Printf("%q opened at $%dM (heat %d x %d%%) for %s", f.Title, f.BoxOffice, f.Heat, f.Multiplier, p.Name)
		}
	}
}
