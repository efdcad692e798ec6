package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// InputType says how a dropdown option is matched
type InputType string

const (
	ByText  InputType = "text"
	ByLabel InputType = "label"
	ByValue InputType = "value"
)

// OptionValues maps an input type to the option selector; text and label both match the label
func OptionValues(inputType InputType, value string) (playwright.SelectOptionValues, error) {
	switch inputType {
	case ByText, ByLabel:
		return playwright.SelectOptionValues{Labels: &[]string{value}}, nil
	case ByValue:
		return playwright.SelectOptionValues{Values: &[]string{value}}, nil
	default:
		return playwright.SelectOptionValues{}, fmt.Errorf("unsupported input type: %q", inputType)
	}
}

// Dropdown selects options of <select> elements
type Dropdown struct {
	actions *Actions
}

// NewDropdown creates a dropdown helper
func NewDropdown(actions *Actions) *Dropdown {
	return &Dropdown{actions: actions}
}

// Select picks the option of el whose visible text is value
func (d *Dropdown) Select(el Element, value string) error {
	return d.SelectBy(el, value, ByText)
}

// SelectBy picks the option of el matched by inputType
func (d *Dropdown) SelectBy(el Element, value string, inputType InputType) error {
	values, err := OptionValues(inputType, value)
	if err != nil {
		return err
	}
	d.actions.log.Info(fmt.Sprintf("Selecting %s %q in dropdown: %s", inputType, value, el))
	if _, err := el.Locator.SelectOption(values); err != nil {
		d.actions.log.Error(fmt.Sprintf("Error selecting %q in dropdown: %s", value, el))
		return fmt.Errorf("select %q in %s: %w", value, el, err)
	}
	return nil
}

// CountOptions asserts that el matches expected option elements
func (d *Dropdown) CountOptions(el Element, expected int) error {
	return playwright.NewPlaywrightAssertions().Locator(el.Locator).ToHaveCount(expected)
}
