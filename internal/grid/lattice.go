package grid

// Lattice is the fixed (Cols+1)×(Rows+1) set of sample positions.
type Lattice struct {
	Cols, Rows int
}

// X returns the normalized horizontal coordinate of column col.
func (l Lattice) X(col int) float64 {
	return float64(col)/float64(l.Cols)*2 - 1
}

// Depth returns the normalized depth of row row.
func (l Lattice) Depth(row int) float64 {
	return float64(row) / float64(l.Rows)
}

// Len is the node count of the lattice.
func (l Lattice) Len() int {
	return (l.Cols + 1) * (l.Rows + 1)
}

// Table stores one frame's projected lattice, column-major.
type Table struct {
	Lattice
	points []Point
}

// NewTable allocates a table for l.
func NewTable(l Lattice) *Table {
	return &Table{Lattice: l, points: make([]Point, l.Len())}
}

// Fill samples f at every node at time t and projects it with cam onto a
// w×h surface, overwriting the previous frame.
func (tb *Table) Fill(f *Field, cam Camera, t, w, h float64) {
	i := 0
	for c := 0; c <= tb.Cols; c++ {
		x := tb.X(c)
		for r := 0; r <= tb.Rows; r++ {
			z := tb.Depth(r)
			tb.points[i] = cam.Project(x, z, f.Sample(x, z, t), w, h)
			i++
		}
	}
}

// At returns the projected node at (col, row).
func (tb *Table) At(col, row int) Point {
	return tb.points[col*(tb.Rows+1)+row]
}

// Len is the number of stored points.
func (tb *Table) Len() int { return len(tb.points) }
