// Package entity provides things placed into a finished layout: the explorer
// cursor and the spawn and goal markers at the main path's endpoints.
package entity

// Explorer is the cursor walked around a rendered layout.
type Explorer struct {
	X, Y   int  // Current cell in the raster
	Symbol rune // Display symbol
}

// NewExplorer creates an explorer at the given cell.
func NewExplorer(x, y int) *Explorer {
	return &Explorer{
		X:      x,
		Y:      y,
		Symbol: '@',
	}
}

// Move updates the explorer position by the given delta.
func (e *Explorer) Move(dx, dy int) {
	e.X += dx
	e.Y += dy
}

// Position returns the current x, y coordinates.
func (e *Explorer) Position() (int, int) {
	return e.X, e.Y
}
