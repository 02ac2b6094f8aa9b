package game

import "log"

const (
	namingQuotaWriters    = 3
	namingQuotaDirectors  = 3
	namingQuotaPerformers = 5
)

// handleBeginNaming is a host intent: opens the talent-naming phase for
// everyone currently connected. Out-of-order starts are dropped.
func (g *Game) handleBeginNaming() error {
	if g.state.Phase != PhaseLobby {
		return errIgnore
	}
	if g.state.connectedCount() == 0 {
		return errIgnore
	}

	g.state.Phase = PhaseNaming
	g.state.Naming = make(map[string]*NamingProgress)
	for id, p := range g.state.Players {
		if p.Connected {
			g.state.Naming[id] = &NamingProgress{
				Writers:    []string{},
				Directors:  []string{},
				Performers: []string{},
			}
		}
	}
	log.Printf("naming phase started with %d studios", len(g.state.Naming))
	return nil
}

// handleSubmitName accepts the next talent name for a player, filling
// the writer, then director, then performer quotas in order. Each name
// is immediately rolled into a scored card in the shared pool. When the
// last player completes their quotas the pool gets a duplicate-name
// pass and the phase closes.
func (g *Game) handleSubmitName(connID, name string) error {
	if g.state.Phase != PhaseNaming {
		return reject("naming_rejected", "Talent naming is not open")
	}
	p, err := g.player(connID)
	if err != nil {
		return err
	}
	prog, ok := g.state.Naming[connID]
	if !ok {
		return errIgnore
	}
	if name == "" {
		return reject("naming_rejected", "Talent name is required")
	}
	if prog.Complete {
		return reject("naming_rejected", "You have already named all your talent")
	}

	var role Role
	switch {
	case len(prog.Writers) < namingQuotaWriters:
		role = RoleWriter
		prog.Writers = append(prog.Writers, name)
	case len(prog.Directors) < namingQuotaDirectors:
		role = RoleDirector
		prog.Directors = append(prog.Directors, name)
	default:
		role = RolePerformer
		prog.Performers = append(prog.Performers, name)
	}

	g.state.Pool = append(g.state.Pool, GenerateTalent(g.rng, role, name))
	log.Printf("%s submitted %s: %s", p.Name, role, name)

	if len(prog.Writers) == namingQuotaWriters &&
		len(prog.Directors) == namingQuotaDirectors &&
		len(prog.Performers) == namingQuotaPerformers {
		prog.Complete = true
		log.Printf("%s completed talent naming", p.Name)

		done := true
		for _, pr := range g.state.Naming {
			if !pr.Complete {
				done = false
				break
			}
		}
		if done {
			DedupeNames(g.state.Pool)
			g.state.Phase = PhaseNamingComplete
			log.Printf("naming complete, %d cards in the pool", len(g.state.Pool))
		}
	}
	return nil
}

// handleBeginProduction is a host intent: kicks off the first
// production cycle once the pool is built.
func (g *Game) handleBeginProduction() error {
	if g.state.Phase != PhaseNamingComplete {
		return errIgnore
	}
	g.state.Cycle = 1
	g.state.Turn = 1
	g.state.Phase = PhaseProduction
	g.startNewTurn()
	log.Printf("production cycle 1 started")
	return nil
}
