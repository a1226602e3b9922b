package space

// Pair is one interacting pair of entries from a proximity query.
type Pair struct {
	A, B int
}

type entry struct {
	id  int
	pos Vec2
}

// Grid is a uniform bucket index over the torus. Cell edges are at
// least one interaction radius long, so a 3×3 cell neighborhood covers
// every candidate within the radius. Rebuilt each tick from live
// positions; insertion order fixes the pairing order, which keeps pair
// enumeration deterministic.
type Grid struct {
	torus  Torus
	radius float64
	cols   int
	rows   int
	cells  [][]entry
	order  []entry
}

// NewGrid creates an empty grid for the given torus and interaction radius.
func NewGrid(t Torus, radius float64) *Grid {
	cols := int(t.Width / radius)
	if cols < 1 {
		cols = 1
	}
	rows := int(t.Height / radius)
	if rows < 1 {
		rows = 1
	}
	return &Grid{
		torus:  t,
		radius: radius,
		cols:   cols,
		rows:   rows,
		cells:  make([][]entry, cols*rows),
	}
}

// Reset clears the grid for reuse, keeping cell capacity.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.order = g.order[:0]
}

// Insert adds an entry at position p. O(1) amortized.
func (g *Grid) Insert(id int, p Vec2) {
	c := g.cellIndex(p)
	e := entry{id: id, pos: p}
	g.cells[c] = append(g.cells[c], e)
	g.order = append(g.order, e)
}

func (g *Grid) cellIndex(p Vec2) int {
	cx := int(p.X / g.torus.Width * float64(g.cols))
	if cx >= g.cols {
		cx = g.cols - 1
	}
	cy := int(p.Y / g.torus.Height * float64(g.rows))
	if cy >= g.rows {
		cy = g.rows - 1
	}
	return cy*g.cols + cx
}

// NearestPairs greedily matches each entry to its nearest unmatched
// neighbor within the radius, in insertion order. Each entry joins at
// most one pair; entries with no neighbor in range produce none.
func (g *Grid) NearestPairs() []Pair {
	paired := make(map[int]bool, len(g.order))
	var pairs []Pair

	for _, e := range g.order {
		if paired[e.id] {
			continue
		}
		best, ok := g.nearest(e, paired)
		if !ok {
			continue
		}
		paired[e.id] = true
		paired[best] = true
		pairs = append(pairs, Pair{A: e.id, B: best})
	}
	return pairs
}

func (g *Grid) nearest(e entry, paired map[int]bool) (int, bool) {
	cx := g.cellIndex(e.pos) % g.cols
	cy := g.cellIndex(e.pos) / g.cols

	best := -1
	bestDist := g.radius
	found := false

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			col := (cx + dx + g.cols) % g.cols
			row := (cy + dy + g.rows) % g.rows
			for _, o := range g.cells[row*g.cols+col] {
				if o.id == e.id || paired[o.id] {
					continue
				}
				d := g.torus.Dist(e.pos, o.pos)
				if d <= g.radius && (!found || d < bestDist) {
					best = o.id
					bestDist = d
					found = true
				}
			}
		}
	}
	return best, found
}
