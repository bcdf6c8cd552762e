package component

import "github.com/go-tabletop/tabletop/pkg/observable"

const checkBoxSize = 16

// CheckBox is a two-state toggle backed by a boolean property.
type CheckBox struct {
	ComponentBase
	Checked *observable.BooleanProperty
}

// NewCheckBox returns an unchecked box at the default size.
func NewCheckBox() *CheckBox {
	c := &CheckBox{
		ComponentBase: NewComponentBase("checkbox"),
		Checked:       observable.NewBooleanProperty(false),
	}
	c.Resize(checkBoxSize, checkBoxSize)
	return c
}

// Toggle flips Checked. Disabled boxes ignore toggling and report false.
func (c *CheckBox) Toggle() bool {
	if c.Disabled.Value() {
		return false
	}
	c.Checked.Set(!c.Checked.Value())
	return true
}

// Properties enumerates the shared refs plus the checked state.
func (c *CheckBox) Properties() []PropertyRef {
	return append(c.ComponentBase.Properties(),
		PropertyRef{Name: "checked", Source: c.Checked, Value: func() any { return c.Checked.Value() }},
	)
}
