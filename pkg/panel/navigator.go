package panel

// Row is one visible line of the panel: a group header when Control is nil
type Row struct {
	Group   *Group
	Control Control
}

// Navigator moves a keyboard cursor over the visible rows of a panel.
// Every edit goes through Panel.OnControlChange.
type Navigator struct {
	panel  *Panel
	cursor int
}

// NewNavigator creates a navigator focused on the first group header
func NewNavigator(p *Panel) *Navigator {
	return &Navigator{panel: p}
}

// Rows returns the visible rows: each header, then its controls unless collapsed
func (n *Navigator) Rows() []Row {
	var rows []Row
	for _, g := range n.panel.groups {
		rows = append(rows, Row{Group: g})
		if g.Collapsed {
			continue
		}
		for _, c := range g.Controls {
			rows = append(rows, Row{Group: g, Control: c})
		}
	}
	return rows
}

// Cursor returns the focused row index, kept inside the visible rows
func (n *Navigator) Cursor() int {
	rows := n.Rows()
	if n.cursor >= len(rows) {
		n.cursor = len(rows) - 1
	}
	if n.cursor < 0 {
		n.cursor = 0
	}
	return n.cursor
}

// Focused returns the focused row
func (n *Navigator) Focused() (Row, bool) {
	rows := n.Rows()
	if len(rows) == 0 {
		return Row{}, false
	}
	return rows[n.Cursor()], true
}

// Next moves the cursor down, wrapping to the top
func (n *Navigator) Next() {
	n.move(1)
}

// Prev moves the cursor up, wrapping to the bottom
func (n *Navigator) Prev() {
	n.move(-1)
}

func (n *Navigator) move(delta int) {
	count := len(n.Rows())
	if count == 0 {
		return
	}
	n.cursor = ((n.Cursor()+delta)%count + count) % count
}

// Increase steps the focused control up, or expands the focused group
func (n *Navigator) Increase() error {
	return n.adjust(1)
}

// Decrease steps the focused control down, or collapses the focused group
func (n *Navigator) Decrease() error {
	return n.adjust(-1)
}

func (n *Navigator) adjust(dir int) error {
	row, ok := n.Focused()
	if !ok {
		return nil
	}
	switch c := row.Control.(type) {
	case nil:
		row.Group.Collapsed = dir < 0
		return nil
	case *Toggle:
		return n.panel.OnControlChange(row.Group.Title, c.Name(), dir > 0)
	case *Slider:
		return n.panel.OnControlChange(row.Group.Title, c.Name(), c.get()+float64(dir)*c.Increment())
	case *Select:
		return n.cycle(row.Group, c, dir)
	default:
		return nil
	}
}

// Activate flips toggles, cycles selects and collapses or expands groups
func (n *Navigator) Activate() error {
	row, ok := n.Focused()
	if !ok {
		return nil
	}
	switch c := row.Control.(type) {
	case nil:
		row.Group.Collapsed = !row.Group.Collapsed
		return nil
	case *Toggle:
		return n.panel.OnControlChange(row.Group.Title, c.Name(), !c.get())
	case *Select:
		return n.cycle(row.Group, c, 1)
	default:
		return nil
	}
}

func (n *Navigator) cycle(g *Group, s *Select, dir int) error {
	if len(s.Options) == 0 {
		return nil
	}
	i := (s.Index() + dir) % len(s.Options)
	if i < 0 {
		i += len(s.Options)
	}
	return n.panel.OnControlChange(g.Title, s.Name(), s.Options[i])
}
