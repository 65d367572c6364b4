package tui

import (
	"github.com/muurk/portctl/internal/command"
	"github.com/muurk/portctl/internal/config"
)

// ButtonView is a button resolved against the current settings. Payload
// is the fully formatted command; Err is set when formatting failed and
// the button must not be pressed.
type ButtonView struct {
	Button  config.Button
	Payload string
	Err     error
}

// Enabled reports whether the button can be pressed.
func (b ButtonView) Enabled() bool {
	return b.Err == nil
}

// GroupView is one panel of the grid.
type GroupView struct {
	Index       int
	Title       string
	Description string
	Type        config.GroupType
	Buttons     []ButtonView
}

// Grid lays groups out row-major in a fixed number of columns.
type Grid struct {
	Columns int
	Groups  []GroupView
}

// BuildGrid resolves every button of a unit type. Format failures are
// recorded on the button, not returned.
func BuildGrid(cfg *config.Config, unitType string, columns int) Grid {
	if columns < 1 {
		columns = 1
	}
	grid := Grid{Columns: columns}
	ut := cfg.UnitType(unitType)
	if ut == nil {
		return grid
	}

	settings := cfg.Settings.Strings()
	for gi, g := range ut.ButtonGroups {
		gv := GroupView{
			Index:       gi,
			Title:       g.Title,
			Description: g.Description,
			Type:        config.InferGroupType(g),
			Buttons:     make([]ButtonView, 0, len(g.Buttons)),
		}
		for _, b := range g.Buttons {
			bv := ButtonView{Button: b}
			if b.Action.NeedsPayload() {
				bv.Payload, bv.Err = command.Format(b.Payload(), settings)
			}
			gv.Buttons = append(gv.Buttons, bv)
		}
		grid.Groups = append(grid.Groups, gv)
	}
	return grid
}

// Errors lists the format failures in the grid, in button order.
func (g Grid) Errors() []error {
	var errs []error
	for _, gv := range g.Groups {
		for _, bv := range gv.Buttons {
			if bv.Err != nil {
				errs = append(errs, bv.Err)
			}
		}
	}
	return errs
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return (len(g.Groups) + g.Columns - 1) / g.Columns
}

// Position returns the row and column of a group index.
func (g Grid) Position(index int) (row, col int) {
	return index / g.Columns, index % g.Columns
}

// At returns the group index at row, col, or -1.
func (g Grid) At(row, col int) int {
	if row < 0 || col < 0 || col >= g.Columns {
		return -1
	}
	i := row*g.Columns + col
	if i >= len(g.Groups) {
		return -1
	}
	return i
}

// Cursor is the focused group and button. Button is -1 in an empty group.
type Cursor struct {
	Group  int
	Button int
}

// Clamp moves the cursor to the nearest valid cell.
func (g Grid) Clamp(c Cursor) Cursor {
	if len(g.Groups) == 0 {
		return Cursor{Group: 0, Button: -1}
	}
	if c.Group < 0 {
		c.Group = 0
	}
	if c.Group >= len(g.Groups) {
		c.Group = len(g.Groups) - 1
	}
	n := len(g.Groups[c.Group].Buttons)
	switch {
	case n == 0:
		c.Button = -1
	case c.Button < 0:
		c.Button = 0
	case c.Button >= n:
		c.Button = n - 1
	}
	return c
}

// Up moves to the previous button, or into the group above.
func (g Grid) Up(c Cursor) Cursor {
	c = g.Clamp(c)
	if c.Button > 0 {
		c.Button--
		return c
	}
	row, col := g.Position(c.Group)
	if above := g.At(row-1, col); above >= 0 {
		return g.Clamp(Cursor{Group: above, Button: len(g.Groups[above].Buttons) - 1})
	}
	return c
}

// Down moves to the next button, or into the group below.
func (g Grid) Down(c Cursor) Cursor {
	c = g.Clamp(c)
	if len(g.Groups) == 0 {
		return c
	}
	if c.Button >= 0 && c.Button < len(g.Groups[c.Group].Buttons)-1 {
		c.Button++
		return c
	}
	row, col := g.Position(c.Group)
	if below := g.At(row+1, col); below >= 0 {
		return g.Clamp(Cursor{Group: below, Button: 0})
	}
	return c
}

// Left moves to the group on the left, keeping the button row.
func (g Grid) Left(c Cursor) Cursor {
	c = g.Clamp(c)
	row, col := g.Position(c.Group)
	if left := g.At(row, col-1); left >= 0 {
		return g.Clamp(Cursor{Group: left, Button: c.Button})
	}
	return c
}

// Right moves to the group on the right, keeping the button row.
func (g Grid) Right(c Cursor) Cursor {
	c = g.Clamp(c)
	row, col := g.Position(c.Group)
	if right := g.At(row, col+1); right >= 0 {
		return g.Clamp(Cursor{Group: right, Button: c.Button})
	}
	return c
}

// Focused returns the button under the cursor.
func (g Grid) Focused(c Cursor) (ButtonView, bool) {
	c = g.Clamp(c)
	if len(g.Groups) == 0 || c.Button < 0 {
		return ButtonView{}, false
	}
	return g.Groups[c.Group].Buttons[c.Button], true
}
