package game

import (
	"fmt"
	"math/rand"
)

// Role is the contribution category a card fills in a film package.
type Role string

const (
	RoleProducer  Role = "producer"
	RoleWriter    Role = "writer"
	RoleDirector  Role = "director"
	RolePerformer Role = "performer"
)

var genres = []string{"Action", "Comedy", "Drama", "Horror", "Romance", "Sci-Fi", "Thriller", "Western"}

var audiences = []string{"Kids", "Teens", "Adults", "Families", "Art House"}

var producerNames = []string{
	"Avi Goldstein", "Rachel Chen", "Marcus Thompson", "Sofia Rodriguez",
	"David Kim", "Emma Watson", "James O'Brien", "Priya Patel",
}

// Card is a generated talent unit. Cards are value objects: they are
// copied whenever they move between the pool, an offer set, and an
// inventory, so mutating one never affects another.
type Card struct {
	Name           string `json:"name"`
	Role           Role   `json:"role"`
	Heat           int    `json:"heat"`
	HeatBucket     string `json:"heat_bucket"`
	Prestige       int    `json:"prestige"`
	PrestigeBucket string `json:"prestige_bucket"`
	Salary         int    `json:"salary"`
	Genre          string `json:"genre,omitempty"`
	Audience       string `json:"audience,omitempty"`
}

func heatBucket(heat int) string {
	switch {
	case heat < 64:
		return "Unknown"
	case heat < 128:
		return "Building"
	case heat < 192:
		return "Buzzing"
	default:
		return "Superstar"
	}
}

func prestigeBucket(prestige int) string {
	switch {
	case prestige < 34:
		return "Mainstream"
	case prestige < 67:
		return "Artist"
	default:
		return "Auteur"
	}
}

// randRange returns a uniform integer in [lo, hi].
func randRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// GenerateTalent rolls heat, prestige and salary for a named talent.
// Producers follow their own two-tier distribution: most are cheap
// connectors with no stats, a few are premium with either heat or
// prestige.
func GenerateTalent(rng *rand.Rand, role Role, name string) Card {
	if role == RoleProducer {
		return generateProducer(rng, name)
	}

	heat := randRange(rng, 1, 255)
	prestige := randRange(rng, 1, 100)
	var salary int

	switch role {
	case RolePerformer:
		salary = heat/10 + randRange(rng, 1, 5)
	case RoleDirector:
		salary = heat/10 + randRange(rng, 1, 5)
		prestige = 100 - heat/3 + randRange(rng, -10, 10)
		if prestige < 1 {
			prestige = 1
		}
		if prestige > 100 {
			prestige = 100
		}
	case RoleWriter:
		salary = prestige/10 + randRange(rng, 1, 3)
	}

	card := Card{
		Name:           name,
		Role:           role,
		Heat:           heat,
		HeatBucket:     heatBucket(heat),
		Prestige:       prestige,
		PrestigeBucket: prestigeBucket(prestige),
		Salary:         salary,
	}
	if role == RoleWriter {
		card.Audience = audiences[rng.Intn(len(audiences))]
	}
	return card
}

func generateProducer(rng *rand.Rand, name string) Card {
	card := Card{
		Name:           name,
		Role:           RoleProducer,
		HeatBucket:     "None",
		PrestigeBucket: "None",
		Genre:          genres[rng.Intn(len(genres))],
	}
	if rng.Float64() < 0.7 {
		// Scale producer: no stats, dirt cheap.
		card.Salary = randRange(rng, 1, 3)
		return card
	}
	// Premium producer: brings either heat or prestige.
	card.Salary = randRange(rng, 8, 15)
	if rng.Float64() < 0.5 {
		card.Heat = randRange(rng, 50, 100)
		card.HeatBucket = heatBucket(card.Heat)
	} else {
		card.Prestige = randRange(rng, 50, 80)
		card.PrestigeBucket = prestigeBucket(card.Prestige)
	}
	return card
}

// DedupeNames suffixes repeated names (Jr., II, III, ...) so every card
// in the pool ends up unique. Runs once, after the naming phase closes.
func DedupeNames(cards []Card) {
	suffixes := []string{"II", "III", "IV", "V"}
	counts := make(map[string]int)
	for i := range cards {
		base := cards[i].Name
		counts[base]++
		switch n := counts[base]; {
		case n == 1:
		case n == 2:
			cards[i].Name = base + " Jr."
		default:
			idx := n - 3
			if idx >= len(suffixes) {
				idx = len(suffixes) - 1
			}
			cards[i].Name = fmt.Sprintf("%s %s", base, suffixes[idx])
		}
	}
}

// drawOffers builds a turn's offer set: up to n cards sampled from the
// pool plus one freshly generated producer, shuffled together.
func drawOffers(rng *rand.Rand, pool []Card, n int) []Card {
	offers := make([]Card, 0, n+1)
	if n > len(pool) {
		n = len(pool)
	}
	for _, i := range rng.Perm(len(pool))[:n] {
		offers = append(offers, pool[i])
	}
	producer := GenerateTalent(rng, RoleProducer, producerNames[rng.Intn(len(producerNames))])
	offers = append(offers, producer)
	rng.Shuffle(len(offers), func(i, j int) {
		offers[i], offers[j] = offers[j], offers[i]
	})
	return offers
}

// FillerSet returns the free no-name talent templates, one per required
// role. Fillers cost nothing, carry floor stats, and are copied per use
// rather than consumed.
func FillerSet() []Card {
	return []Card{
		{Name: "No-Name Producer", Role: RoleProducer, Heat: 1, HeatBucket: heatBucket(1), Prestige: 1, PrestigeBucket: prestigeBucket(1), Genre: "Drama"},
		{Name: "No-Name Writer", Role: RoleWriter, Heat: 1, HeatBucket: heatBucket(1), Prestige: 1, PrestigeBucket: prestigeBucket(1), Audience: "Adults"},
		{Name: "No-Name Director", Role: RoleDirector, Heat: 1, HeatBucket: heatBucket(1), Prestige: 1, PrestigeBucket: prestigeBucket(1)},
		{Name: "No-Name Performer", Role: RolePerformer, Heat: 1, HeatBucket: heatBucket(1), Prestige: 1, PrestigeBucket: prestigeBucket(1)},
	}
}
