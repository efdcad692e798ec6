package pages

import (
	"github.com/playwright-community/playwright-go"
)

// HomePage is the login page
type HomePage struct {
	actions *Actions

	Username       Element
	Password       Element
	LoginButton    Element
	ForgotPassword Element
	NewUserLink    Element
	AppLogo        Element
}

// NewHomePage locates the login page elements on page
func NewHomePage(page playwright.Page, actions *Actions) *HomePage {
	return &HomePage{
		actions:     actions,
		Username:    Element{"username field", page.Locator("table #username")},
		Password:    Element{"password field", page.Locator("table #password")},
		LoginButton: Element{"login button", page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Login"})},
		ForgotPassword: Element{"forgot password link",
			page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{Name: "Forgot Password?"})},
		NewUserLink: Element{"new user link",
			page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{Name: "New User Register Here"})},
		AppLogo: Element{"app logo", page.GetByAltText("Adactin Group")},
	}
}

// Login fills the credentials and submits the form
func (p *HomePage) Login(username, password string) error {
	if err := p.actions.Fill(p.Username, username); err != nil {
		return err
	}
	if err := p.actions.Fill(p.Password, password); err != nil {
		return err
	}
	return p.actions.Click(p.LoginButton)
}

// ClickForgotPassword opens the password recovery page
func (p *HomePage) ClickForgotPassword() error {
	return p.actions.Click(p.ForgotPassword)
}

// ClickNewUser opens the registration page
func (p *HomePage) ClickNewUser() error {
	return p.actions.Click(p.NewUserLink)
}
