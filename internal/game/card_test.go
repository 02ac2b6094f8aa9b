package game

import (
	"math/rand"
	"testing"
)

func TestGenerateTalentRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, role := range []Role{RoleWriter, RoleDirector, RolePerformer} {
		for i := 0; i < 200; i++ {
			c := GenerateTalent(rng, role, "Talent")
			if c.Heat < 1 || c.Heat > 255 {
				t.Fatalf("%s heat %d out of range", role, c.Heat)
			}
			if c.Prestige < 1 || c.Prestige > 100 {
				t.Fatalf("%s prestige %d out of range", role, c.Prestige)
			}
			if c.Salary < 1 {
				t.Fatalf("%s salary %d below 1", role, c.Salary)
			}
			if c.HeatBucket == "" || c.PrestigeBucket == "" {
				t.Fatalf("%s missing bucket labels: %+v", role, c)
			}
			if role == RoleWriter && c.Audience == "" {
				t.Fatal("writer missing audience")
			}
			if role != RoleWriter && c.Audience != "" {
				t.Fatalf("%s has audience %q", role, c.Audience)
			}
		}
	}
}

func TestGenerateProducerTiers(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sawScale, sawPremium := false, false
	for i := 0; i < 200; i++ {
		c := GenerateTalent(rng, RoleProducer, "Producer")
		if c.Genre == "" {
			t.Fatal("producer missing genre")
		}
		if c.Heat == 0 && c.Prestige == 0 {
			sawScale = true
			if c.Salary < 1 || c.Salary > 3 {
				t.Fatalf("scale producer salary %d out of range", c.Salary)
			}
			if c.HeatBucket != "None" || c.PrestigeBucket != "None" {
				t.Fatalf("scale producer should have None buckets: %+v", c)
			}
		} else {
			sawPremium = true
			if c.Salary < 8 || c.Salary > 15 {
				t.Fatalf("premium producer salary %d out of range", c.Salary)
			}
			if c.Heat != 0 && c.Prestige != 0 {
				t.Fatalf("premium producer has both stats: %+v", c)
			}
		}
	}
	if !sawScale || !sawPremium {
		t.Fatalf("expected both producer tiers in 200 draws (scale=%v premium=%v)", sawScale, sawPremium)
	}
}

func TestHeatBuckets(t *testing.T) {
	cases := []struct {
		heat int
		want string
	}{
		{1, "Unknown"}, {63, "Unknown"},
		{64, "Building"}, {127, "Building"},
		{128, "Buzzing"}, {191, "Buzzing"},
		{192, "Superstar"}, {255, "Superstar"},
	}
	for _, tc := range cases {
		if got := heatBucket(tc.heat); got != tc.want {
			t.Fatalf("heatBucket(%d) = %q, want %q", tc.heat, got, tc.want)
		}
	}
}

func TestPrestigeBuckets(t *testing.T) {
	cases := []struct {
		prestige int
		want     string
	}{
		{1, "Mainstream"}, {33, "Mainstream"},
		{34, "Artist"}, {66, "Artist"},
		{67, "Auteur"}, {100, "Auteur"},
	}
	for _, tc := range cases {
		if got := prestigeBucket(tc.prestige); got != tc.want {
			t.Fatalf("prestigeBucket(%d) = %q, want %q", tc.prestige, got, tc.want)
		}
	}
}

func TestDedupeNames(t *testing.T) {
	cards := []Card{
		{Name: "Bob"}, {Name: "Alice"}, {Name: "Bob"}, {Name: "Bob"}, {Name: "Bob"},
	}
	DedupeNames(cards)

	want := []string{"Bob", "Alice", "Bob Jr.", "Bob II", "Bob III"}
	for i, w := range want {
		if cards[i].Name != w {
			t.Fatalf("card %d: got %q, want %q", i, cards[i].Name, w)
		}
	}
}

func TestDrawOffers(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pool := make([]Card, 0, 8)
	for i := 0; i < 8; i++ {
		pool = append(pool, GenerateTalent(rng, RolePerformer, "Star"))
	}

	offers := drawOffers(rng, pool, 3)
	if len(offers) != 4 {
		t.Fatalf("expected 4 offers (3 pool + 1 producer), got %d", len(offers))
	}
	producers := 0
	for _, c := range offers {
		if c.Role == RoleProducer {
			producers++
		}
	}
	if producers != 1 {
		t.Fatalf("expected exactly one producer in the offer set, got %d", producers)
	}
}

func TestDrawOffersSmallPool(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pool := []Card{testCard("Only", RolePerformer, 5)}

	offers := drawOffers(rng, pool, 4)
	if len(offers) != 2 {
		t.Fatalf("expected pool card + producer, got %d offers", len(offers))
	}
}

func TestFillerSetCoversRoles(t *testing.T) {
	fillers := FillerSet()
	if len(fillers) != 4 {
		t.Fatalf("expected 4 fillers, got %d", len(fillers))
	}
	seen := make(map[Role]bool)
	for _, f := range fillers {
		if f.Salary != 0 {
			t.Fatalf("filler %s has salary %d, fillers are free", f.Name, f.Salary)
		}
		seen[f.Role] = true
	}
	for _, role := range []Role{RoleProducer, RoleWriter, RoleDirector, RolePerformer} {
		if !seen[role] {
			t.Fatalf("missing filler for role %s", role)
		}
	}
}
