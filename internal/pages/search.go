package pages

import (
	"github.com/playwright-community/playwright-go"

	"github.com/adactin-qa/hotelsuite/internal/bookingdata"
)

// SearchHotelPage is the hotel search form shown after login
type SearchHotelPage struct {
	actions  *Actions
	dropdown *Dropdown

	Heading         Element
	Location        Element
	Hotels          Element
	RoomType        Element
	NumberOfRooms   Element
	CheckInDate     Element
	CheckOutDate    Element
	AdultsPerRoom   Element
	ChildrenPerRoom Element
	SearchButton    Element
	ResetButton     Element
	UsernameShow    Element
}

// NewSearchHotelPage locates the search form elements on page
func NewSearchHotelPage(page playwright.Page, actions *Actions) *SearchHotelPage {
	return &SearchHotelPage{
		actions:  actions,
		dropdown: NewDropdown(actions),
		Heading: Element{"search hotel heading", page.GetByRole(*playwright.AriaRoleCell, playwright.PageGetByRoleOptions{
			Name:  "Search Hotel (Fields marked with Red asterix (*) are mandatory)",
			Exact: playwright.Bool(true),
		})},
		Location:        Element{"location dropdown", page.Locator("#location")},
		Hotels:          Element{"hotels dropdown", page.Locator("#hotels")},
		RoomType:        Element{"room type dropdown", page.Locator("#room_type")},
		NumberOfRooms:   Element{"number of rooms dropdown", page.Locator("#room_nos")},
		CheckInDate:     Element{"check in date", page.Locator("#datepick_in")},
		CheckOutDate:    Element{"check out date", page.Locator("#datepick_out")},
		AdultsPerRoom:   Element{"adults per room dropdown", page.Locator("#adult_room")},
		ChildrenPerRoom: Element{"children per room dropdown", page.Locator("#child_room")},
		SearchButton:    Element{"search button", page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Search"})},
		ResetButton:     Element{"reset button", page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Reset"})},
		UsernameShow:    Element{"username greeting", page.Locator("#username_show")},
	}
}

func (p *SearchHotelPage) SelectLocation(location string) error {
	return p.dropdown.Select(p.Location, location)
}

func (p *SearchHotelPage) SelectHotel(hotel string) error {
	return p.dropdown.Select(p.Hotels, hotel)
}

func (p *SearchHotelPage) SelectRoomType(roomType string) error {
	return p.dropdown.Select(p.RoomType, roomType)
}

func (p *SearchHotelPage) SelectNumberOfRooms(rooms string) error {
	return p.dropdown.Select(p.NumberOfRooms, rooms)
}

func (p *SearchHotelPage) EnterCheckInDate(date string) error {
	return p.actions.Fill(p.CheckInDate, date)
}

func (p *SearchHotelPage) EnterCheckOutDate(date string) error {
	return p.actions.Fill(p.CheckOutDate, date)
}

func (p *SearchHotelPage) SelectAdultsPerRoom(adults string) error {
	return p.dropdown.Select(p.AdultsPerRoom, adults)
}

func (p *SearchHotelPage) SelectChildrenPerRoom(children string) error {
	return p.dropdown.Select(p.ChildrenPerRoom, children)
}

func (p *SearchHotelPage) ClickSearch() error {
	return p.actions.Click(p.SearchButton)
}

func (p *SearchHotelPage) ClickReset() error {
	return p.actions.Click(p.ResetButton)
}

// FillSearch enters a complete search in form order, stopping at the first failure
func (p *SearchHotelPage) FillSearch(d bookingdata.SearchPage) error {
	steps := []func() error{
		func() error { return p.SelectLocation(d.Location) },
		func() error { return p.SelectHotel(d.Hotel) },
		func() error { return p.SelectRoomType(d.RoomType) },
		func() error { return p.SelectNumberOfRooms(d.NumberOfRooms) },
		func() error { return p.EnterCheckInDate(d.CheckInDate) },
		func() error { return p.EnterCheckOutDate(d.CheckOutDate) },
		func() error { return p.SelectAdultsPerRoom(d.AdultsPerRoom) },
		func() error { return p.SelectChildrenPerRoom(d.ChildrenPerRoom) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
