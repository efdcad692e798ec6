// Package pages holds the page objects of the hotel booking application
// and the element helpers they are built from.
package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/adactin-qa/hotelsuite/internal/logger"
)

// Element is a locator with a readable name for log lines
type Element struct {
	Name    string
	Locator playwright.Locator
}

func (e Element) String() string {
	return e.Name
}

// Actions performs logged interactions on elements
type Actions struct {
	log *logger.Logger
}

// NewActions creates element actions that log to log
func NewActions(log *logger.Logger) *Actions {
	if log == nil {
		log = logger.New(logger.Options{Name: "actions"})
	}
	return &Actions{log: log}
}

// Click clicks el
func (a *Actions) Click(el Element) error {
	a.log.Info(fmt.Sprintf("Clicking on element: %s", el))
	if err := el.Locator.Click(); err != nil {
		a.log.Error(fmt.Sprintf("Error clicking on element: %s", el))
		return fmt.Errorf("click %s: %w", el, err)
	}
	a.log.Info("Element clicked")
	return nil
}

// DoubleClick double clicks el
func (a *Actions) DoubleClick(el Element) error {
	a.log.Info(fmt.Sprintf("Double clicking on element: %s", el))
	if err := el.Locator.Dblclick(); err != nil {
		a.log.Error(fmt.Sprintf("Error double clicking on element: %s", el))
		return fmt.Errorf("double click %s: %w", el, err)
	}
	a.log.Info("Element double clicked")
	return nil
}

// Fill types text into el
func (a *Actions) Fill(el Element, text string) error {
	a.log.Info(fmt.Sprintf("Filling text: %s into element: %s", text, el))
	if err := el.Locator.Fill(text); err != nil {
		a.log.Error(fmt.Sprintf("Error filling text into element: %s", el))
		return fmt.Errorf("fill %s: %w", el, err)
	}
	a.log.Info("Text filled successfully")
	return nil
}

// InputValue returns the current value of an input
func (a *Actions) InputValue(el Element) (string, error) {
	a.log.Info(fmt.Sprintf("Getting input value from element: %s", el))
	v, err := el.Locator.InputValue()
	if err != nil {
		a.log.Error(fmt.Sprintf("Error getting input value from element: %s", el))
		return "", fmt.Errorf("input value of %s: %w", el, err)
	}
	return v, nil
}

// Attribute returns an attribute value of el
func (a *Actions) Attribute(el Element, name string) (string, error) {
	a.log.Info(fmt.Sprintf("Getting attribute value from element: %s", el))
	v, err := el.Locator.GetAttribute(name)
	if err != nil {
		a.log.Error(fmt.Sprintf("Error getting attribute value from element: %s", el))
		return "", fmt.Errorf("attribute %s of %s: %w", name, el, err)
	}
	return v, nil
}

// InnerText returns the visible text of el
func (a *Actions) InnerText(el Element) (string, error) {
	a.log.Info(fmt.Sprintf("Getting visible text from element: %s", el))
	v, err := el.Locator.InnerText()
	if err != nil {
		a.log.Error(fmt.Sprintf("Error getting visible text from element: %s", el))
		return "", fmt.Errorf("inner text of %s: %w", el, err)
	}
	return v, nil
}

// TextContent returns the raw DOM text of el
func (a *Actions) TextContent(el Element) (string, error) {
	a.log.Info(fmt.Sprintf("Getting raw text from element: %s", el))
	v, err := el.Locator.TextContent()
	if err != nil {
		a.log.Error(fmt.Sprintf("Error getting raw text from element: %s", el))
		return "", fmt.Errorf("text content of %s: %w", el, err)
	}
	return v, nil
}

// All expands el into one locator per match
func (a *Actions) All(el Element) ([]playwright.Locator, error) {
	a.log.Info(fmt.Sprintf("Getting array of locators from elements: %s", el))
	all, err := el.Locator.All()
	if err != nil {
		a.log.Error(fmt.Sprintf("Error getting array of locators from elements: %s", el))
		return nil, fmt.Errorf("locators of %s: %w", el, err)
	}
	return all, nil
}
