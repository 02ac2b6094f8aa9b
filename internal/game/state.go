package game

// Phase is the single authoritative tag for where the game is. All
// branching on game progress goes through these constants; the cycle
// number (Winter/Spring vs Summer/Holiday) is tracked separately so the
// same phase values serve both production cycles.
type Phase string

const (
	PhaseLobby          Phase = "lobby"
	PhaseNaming         Phase = "naming"
	PhaseNamingComplete Phase = "naming_complete"
	PhaseProduction     Phase = "production"
	PhaseBidding        Phase = "bidding"
	PhaseBiddingResults Phase = "bidding_results"
	PhasePackaging      Phase = "packaging"
	PhaseReleases       Phase = "releases"
	PhaseAwardVoting    Phase = "award_voting"
	PhaseAwardResults   Phase = "award_results"
	PhaseComplete       Phase = "complete"
)

// Player is one studio. Every field is always present from creation so
// no handler needs an existence check. The map key in State.Players is
// the volatile connection id; Name is the durable identity that
// survives reconnects.
type Player struct {
	Name      string    `json:"name"`
	Budget    int       `json:"budget"`
	Score     int       `json:"score"`
	Inventory []Card    `json:"inventory"`
	Products  []Product `json:"products"`
	Ready     bool      `json:"ready"`
	Connected bool      `json:"connected"`
}

// Product is a committed film package. Released/Multiplier/BoxOffice
// are filled in exactly once by the release evaluation.
type Product struct {
	Title      string `json:"title"`
	Blurb      string `json:"blurb"`
	Cards      []Card `json:"cards"`
	Heat       int    `json:"heat"`
	Prestige   int    `json:"prestige"`
	Genre      string `json:"genre"`
	Audience   string `json:"audience"`
	Released   bool   `json:"released"`
	Multiplier int    `json:"multiplier,omitempty"`
	BoxOffice  int    `json:"box_office,omitempty"`
}

// Selection is one player's choice for the current turn: either an
// offer index or an explicit pass.
type Selection struct {
	Pass  bool `json:"pass,omitempty"`
	Index int  `json:"index"`
}

// NamingProgress tracks one player's talent-naming quotas.
type NamingProgress struct {
	Writers    []string `json:"writers"`
	Directors  []string `json:"directors"`
	Performers []string `json:"performers"`
	Complete   bool     `json:"complete"`
}

// conflict is one contested offer index with everyone who picked it.
type conflict struct {
	Index   int
	Players []string
}

// BiddingWar holds the state of the sequential auction sub-protocol.
// Card is a frozen copy taken at contention time; Queue holds the
// conflicts still to be run after the active one; Uncontested holds the
// singleton picks that get awarded once the whole queue drains.
type BiddingWar struct {
	Active       bool
	CardIndex    int
	Card         Card
	Participants []string
	Bids         map[string]int
	Queue        []conflict
	Uncontested  map[int]string
}

// Nominee is one film up for Best Picture.
type Nominee struct {
	Title     string `json:"title"`
	Studio    string `json:"studio"`
	Genre     string `json:"genre"`
	Audience  string `json:"audience"`
	Heat      int    `json:"heat"`
	BoxOffice int    `json:"box_office"`
}

// Awards tracks the voting stage. Votes is keyed by connection id like
// every other phase-local structure.
type Awards struct {
	Nominees []Nominee
	Votes    map[string]int
	Winner   *Nominee
}

// State is the single authoritative game state. It is owned by the
// game's command loop and never touched from another goroutine.
type State struct {
	Phase      Phase
	Cycle      int
	Turn       int
	Players    map[string]*Player
	Pool       []Card
	Naming     map[string]*NamingProgress
	Offers     []Card
	Selections map[string]Selection
	Bidding    *BiddingWar
	Fillers    []Card
	Awards     *Awards
}

func newState() *State {
	return &State{
		Phase:      PhaseLobby,
		Players:    make(map[string]*Player),
		Selections: make(map[string]Selection),
	}
}

// connectedCount returns how many players currently hold a live
// connection. Barriers and selection completeness are measured against
// this, never against the full (reconnectable) player set.
func (s *State) connectedCount() int {
	n := 0
	for _, p := range s.Players {
		if p.Connected {
			n++
		}
	}
	return n
}

// allConnectedReady reports whether every connected player has raised
// the shared ready flag. False when nobody is connected.
func (s *State) allConnectedReady() bool {
	if s.connectedCount() == 0 {
		return false
	}
	for _, p := range s.Players {
		if p.Connected && !p.Ready {
			return false
		}
	}
	return true
}

func (s *State) clearReady() {
	for _, p := range s.Players {
		p.Ready = false
	}
}
