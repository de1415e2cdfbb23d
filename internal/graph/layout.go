package graph

// LayoutFunc assigns an on-canvas position given a node's category column and
// its row within that column. Layouts must be deterministic so that graph
// generation is reproducible.
type LayoutFunc func(col, row int) Position

// GridLayout places category columns left to right and stacks nodes of the
// same category vertically. Coordinates stay within the usual canvas range.
func GridLayout(col, row int) Position {
	return Position{
		X: 120 + float64(col)*220,
		Y: 80 + float64(row)*140,
	}
}
