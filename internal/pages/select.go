package pages

import (
	"github.com/playwright-community/playwright-go"
)

// SelectHotelPage lists the hotels matching a search
type SelectHotelPage struct {
	actions  *Actions
	checkBox *CheckBox

	Heading        Element
	FirstRadio     Element
	FirstHotelName Element
	ContinueButton Element
}

// NewSelectHotelPage locates the result list elements on page
func NewSelectHotelPage(page playwright.Page, actions *Actions) *SelectHotelPage {
	return &SelectHotelPage{
		actions:        actions,
		checkBox:       NewCheckBox(actions),
		Heading:        Element{"select hotel form", page.Locator("#select_form")},
		FirstRadio:     Element{"first hotel radio", page.Locator("#radiobutton_0")},
		FirstHotelName: Element{"first hotel name", page.Locator("#hotel_name_0")},
		ContinueButton: Element{"continue button", page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Continue"})},
	}
}

// ChooseFirstHotel selects the first result
func (p *SelectHotelPage) ChooseFirstHotel() error {
	return p.checkBox.SelectRadio(p.FirstRadio)
}

// Continue submits the selection
func (p *SelectHotelPage) Continue() error {
	return p.actions.Click(p.ContinueButton)
}
