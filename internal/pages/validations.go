package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/adactin-qa/hotelsuite/internal/logger"
)

// Validations wraps web-first assertions with logging
type Validations struct {
	log    *logger.Logger
	expect playwright.PlaywrightAssertions
}

// NewValidations creates assertions that retry up to timeout
func NewValidations(log *logger.Logger, timeout float64) *Validations {
	if log == nil {
		log = logger.New(logger.Options{Name: "validations"})
	}
	return &Validations{log: log, expect: playwright.NewPlaywrightAssertions(timeout)}
}

func (v *Validations) check(el Element, what string, err error) error {
	if err != nil {
		v.log.Error(fmt.Sprintf("Assertion failed: %s %s", el, what))
		return fmt.Errorf("%s %s: %w", el, what, err)
	}
	v.log.Info(fmt.Sprintf("Assertion passed: %s %s", el, what))
	return nil
}

// Visible asserts that el is visible
func (v *Validations) Visible(el Element) error {
	return v.check(el, "is visible", v.expect.Locator(el.Locator).ToBeVisible())
}

// Hidden asserts that el is hidden
func (v *Validations) Hidden(el Element) error {
	return v.check(el, "is hidden", v.expect.Locator(el.Locator).ToBeHidden())
}

// Enabled asserts that el is enabled
func (v *Validations) Enabled(el Element) error {
	return v.check(el, "is enabled", v.expect.Locator(el.Locator).ToBeEnabled())
}

// Checked asserts that el is checked
func (v *Validations) Checked(el Element) error {
	return v.check(el, "is checked", v.expect.Locator(el.Locator).ToBeChecked())
}

// HasText asserts that the text of el equals expected
func (v *Validations) HasText(el Element, expected string) error {
	return v.check(el, fmt.Sprintf("has text %q", expected), v.expect.Locator(el.Locator).ToHaveText(expected))
}

// ContainsText asserts that the text of el contains expected
func (v *Validations) ContainsText(el Element, expected string) error {
	return v.check(el, fmt.Sprintf("contains text %q", expected), v.expect.Locator(el.Locator).ToContainText(expected))
}

// HasValue asserts the value of an input
func (v *Validations) HasValue(el Element, expected string) error {
	return v.check(el, fmt.Sprintf("has value %q", expected), v.expect.Locator(el.Locator).ToHaveValue(expected))
}
