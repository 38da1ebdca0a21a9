// Package panel exposes effect parameters as grouped live controls.
package panel

import (
	"errors"
	"fmt"
)

// Group is the set of controls governing one effect
type Group struct {
	Title     string
	Controls  []Control
	Collapsed bool
}

// Control looks up a control by name
func (g *Group) Control(name string) (Control, bool) {
	for _, c := range g.Controls {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Panel is an ordered list of groups. It holds no parameter values of its
// own: every control reads and writes the bound effect directly.
type Panel struct {
	groups   []*Group
	Visible  bool
	onChange func(group, field string, value interface{})
}

// NewPanel creates a visible panel from groups
func NewPanel(groups ...*Group) *Panel {
	return &Panel{groups: groups, Visible: true}
}

// Groups returns the groups in display order
func (p *Panel) Groups() []*Group {
	return p.groups
}

// Group looks up a group by title
func (p *Panel) Group(title string) (*Group, bool) {
	for _, g := range p.groups {
		if g.Title == title {
			return g, true
		}
	}
	return nil, false
}

// OnChange registers a callback invoked after every successful change
func (p *Panel) OnChange(fn func(group, field string, value interface{})) {
	p.onChange = fn
}

// OnControlChange writes value through the control group/field.
// The change is applied immediately; there is no undo.
func (p *Panel) OnControlChange(group, field string, value interface{}) error {
	g, ok := p.Group(group)
	if !ok {
		return fmt.Errorf("%w: group %q", ErrUnknownControl, group)
	}
	c, ok := g.Control(field)
	if !ok {
		return fmt.Errorf("%w: %q in group %q", ErrUnknownControl, field, group)
	}
	if err := c.Set(value); err != nil {
		return err
	}
	p.changed(group, field, c.Value())
	return nil
}

// SetCollapsed collapses or expands the groups with the given titles
func (p *Panel) SetCollapsed(titles []string, collapsed bool) {
	for _, t := range titles {
		if g, ok := p.Group(t); ok {
			g.Collapsed = collapsed
		}
	}
}

// Snapshot captures every control value: group title -> control -> value
func (p *Panel) Snapshot() map[string]map[string]interface{} {
	snap := make(map[string]map[string]interface{}, len(p.groups))
	for _, g := range p.groups {
		fields := make(map[string]interface{}, len(g.Controls))
		for _, c := range g.Controls {
			fields[c.Name()] = c.Value()
		}
		snap[g.Title] = fields
	}
	return snap
}

// Restore replays a snapshot through OnControlChange in display order.
// Toggles go first within a group so the saved blend mode wins over the
// default picked by enabling. Every failing entry is reported.
func (p *Panel) Restore(values map[string]map[string]interface{}) error {
	var errs []error
	for _, g := range p.groups {
		fields, ok := values[g.Title]
		if !ok {
			continue
		}
		for _, pass := range []bool{true, false} {
			for _, c := range g.Controls {
				if (c.Kind() == KindToggle) != pass {
					continue
				}
				if v, ok := fields[c.Name()]; ok {
					if err := p.OnControlChange(g.Title, c.Name(), v); err != nil {
						errs = append(errs, err)
					}
				}
			}
		}
		for name := range fields {
			if _, ok := g.Control(name); !ok {
				errs = append(errs, fmt.Errorf("%w: %q in group %q", ErrUnknownControl, name, g.Title))
			}
		}
	}
	for title := range values {
		if _, ok := p.Group(title); !ok {
			errs = append(errs, fmt.Errorf("%w: group %q", ErrUnknownControl, title))
		}
	}
	return errors.Join(errs...)
}

func (p *Panel) changed(group, field string, value interface{}) {
	if p.onChange != nil {
		p.onChange(group, field, value)
	}
}
