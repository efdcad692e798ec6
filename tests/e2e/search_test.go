package e2e

import (
	"testing"

	"github.com/adactin-qa/hotelsuite/tests/e2e/helpers"
)

func TestSearchPage(t *testing.T) {
	s := helpers.Start(t, "Search Page Tests")

	// Login and navigate to the search hotel page
	s.Login(t)

	// Search form interactions
	s.SearchHotels(t)

	// Navigation to the select hotel page
	s.Check(s.Validate.Visible(s.Select.Heading))
}
