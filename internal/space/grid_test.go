package space

import "testing"

func buildGrid(t Torus, radius float64, points []Vec2) *Grid {
	g := NewGrid(t, radius)
	for i, p := range points {
		g.Insert(i, p)
	}
	return g
}

func TestNearestPairsMatchesWithinRadius(t *testing.T) {
	tor := Torus{Width: 10, Height: 10}
	g := buildGrid(tor, 1, []Vec2{
		{1, 1},
		{1.5, 1},
		{8, 8}, // isolated
	})

	pairs := g.NearestPairs()
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].A != 0 || pairs[0].B != 1 {
		t.Fatalf("paired %v, want {0 1}", pairs[0])
	}
}

func TestNearestPairsPrefersClosestNeighbor(t *testing.T) {
	tor := Torus{Width: 10, Height: 10}
	g := buildGrid(tor, 1, []Vec2{
		{1, 1},
		{1.9, 1}, // in range but further
		{1.3, 1}, // nearest to 0
	})

	pairs := g.NearestPairs()
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].A != 0 || pairs[0].B != 2 {
		t.Fatalf("paired %v, want {0 2}", pairs[0])
	}
}

func TestNearestPairsEachAgentAtMostOnce(t *testing.T) {
	tor := Torus{Width: 10, Height: 10}
	g := buildGrid(tor, 1, []Vec2{
		{1, 1},
		{1.4, 1},
		{1.8, 1},
		{2.2, 1},
	})

	pairs := g.NearestPairs()
	seen := map[int]bool{}
	for _, p := range pairs {
		if seen[p.A] || seen[p.B] {
			t.Fatalf("agent appears in two pairs: %v", pairs)
		}
		seen[p.A] = true
		seen[p.B] = true
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
}

func TestNearestPairsAcrossSeam(t *testing.T) {
	tor := Torus{Width: 10, Height: 10}
	g := buildGrid(tor, 1, []Vec2{
		{0.2, 5},
		{9.9, 5}, // 0.3 away through the seam
	})

	pairs := g.NearestPairs()
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1 across the seam", len(pairs))
	}
}

func TestGridResetReuse(t *testing.T) {
	tor := Torus{Width: 10, Height: 10}
	g := buildGrid(tor, 1, []Vec2{{1, 1}, {1.2, 1}})
	if len(g.NearestPairs()) != 1 {
		t.Fatal("expected a pair before reset")
	}

	g.Reset()
	g.Insert(0, Vec2{1, 1})
	g.Insert(1, Vec2{5, 5})
	if pairs := g.NearestPairs(); len(pairs) != 0 {
		t.Fatalf("got %d pairs after reset, want 0", len(pairs))
	}
}
