package pages

import (
	"fmt"
)

// CheckBox toggles radio buttons and check boxes
type CheckBox struct {
	actions *Actions
}

// NewCheckBox creates a check box helper
func NewCheckBox(actions *Actions) *CheckBox {
	return &CheckBox{actions: actions}
}

// SelectRadio checks a radio button
func (c *CheckBox) SelectRadio(el Element) error {
	c.actions.log.Info(fmt.Sprintf("Selecting radio button: %s", el))
	if err := el.Locator.Check(); err != nil {
		return fmt.Errorf("check %s: %w", el, err)
	}
	return nil
}

// Select checks el unless it is already checked
func (c *CheckBox) Select(el Element) error {
	checked, err := el.Locator.IsChecked()
	if err != nil {
		return fmt.Errorf("state of %s: %w", el, err)
	}
	if checked {
		return nil
	}
	if err := el.Locator.Check(); err != nil {
		return fmt.Errorf("check %s: %w", el, err)
	}
	return nil
}

// Unselect unchecks el when it is checked
func (c *CheckBox) Unselect(el Element) error {
	checked, err := el.Locator.IsChecked()
	if err != nil {
		return fmt.Errorf("state of %s: %w", el, err)
	}
	if !checked {
		return nil
	}
	if err := el.Locator.Uncheck(); err != nil {
		return fmt.Errorf("uncheck %s: %w", el, err)
	}
	return nil
}

// SelectAll checks every box matched by el
func (c *CheckBox) SelectAll(el Element) error {
	return c.setAll(el, true)
}

// UnselectAll unchecks every box matched by el
func (c *CheckBox) UnselectAll(el Element) error {
	return c.setAll(el, false)
}

func (c *CheckBox) setAll(el Element, want bool) error {
	boxes, err := c.actions.All(el)
	if err != nil {
		return err
	}
	for i, box := range boxes {
		item := Element{Name: fmt.Sprintf("%s[%d]", el.Name, i), Locator: box}
		if want {
			err = c.Select(item)
		} else {
			err = c.Unselect(item)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CountChecked returns how many boxes matched by el are checked
func (c *CheckBox) CountChecked(el Element) (int, error) {
	boxes, err := c.actions.All(el)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, box := range boxes {
		checked, err := box.IsChecked()
		if err != nil {
			return 0, fmt.Errorf("state of %s: %w", el, err)
		}
		if checked {
			count++
		}
	}
	return count, nil
}
