package pages

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Login form selectors.
const (
	LoginPath = "index.html"

	LoginEmail              = "#loginEmail"
	LoginPassword           = "#loginPassword"
	LoginRememberMe         = "#rememberMe"
	LoginSubmit             = "button[type='submit']"
	LoginForgotPasswordLink = "a[href='forgot-password.html']"
	LoginRegisterLink       = "a[href='register.html']"

	LoginEmailError    = "#loginEmailError"
	LoginPasswordError = "#loginPasswordError"
	LoginMessage       = "#loginMessage"
)

// LoginPage is index.html.
type LoginPage struct {
	Base
}

// NewLoginPage wraps page without navigating.
func NewLoginPage(page playwright.Page, site Site) *LoginPage {
	return &LoginPage{Base: newBase(page, site, "login")}
}

// Open navigates to the login form.
func (p *LoginPage) Open() error {
	return p.Navigate(LoginPath)
}

func (p *LoginPage) FillEmail(v string) error    { return p.Fill(LoginEmail, v) }
func (p *LoginPage) FillPassword(v string) error { return p.Fill(LoginPassword, v) }
func (p *LoginPage) CheckRememberMe() error      { return p.SetChecked(LoginRememberMe, true) }

// ClickLogin submits the form and waits for the page to settle.
func (p *LoginPage) ClickLogin() error {
	if err := p.Click(LoginSubmit); err != nil {
		return err
	}
	p.Settle()
	return nil
}

// Login fills both credentials and submits.
func (p *LoginPage) Login(email, password string) error {
	if err := p.FillEmail(email); err != nil {
		return err
	}
	if err := p.FillPassword(password); err != nil {
		return err
	}
	return p.ClickLogin()
}

func (p *LoginPage) ClickForgotPassword() error { return p.Click(LoginForgotPasswordLink) }
func (p *LoginPage) ClickRegister() error       { return p.Click(LoginRegisterLink) }

// Message returns the form-level status message.
func (p *LoginPage) Message() string { return p.ElementText(LoginMessage) }

// WaitForMessage blocks until the status message is shown.
func (p *LoginPage) WaitForMessage(timeout time.Duration) error {
	return p.WaitForVisible(LoginMessage, timeout)
}

func (p *LoginPage) HasSuccessMessage() bool { return p.HasMessageClass(LoginMessage, "success") }
func (p *LoginPage) HasErrorMessage() bool   { return p.HasMessageClass(LoginMessage, "error") }

func (p *LoginPage) EmailError() string    { return p.ElementText(LoginEmailError) }
func (p *LoginPage) PasswordError() string { return p.ElementText(LoginPasswordError) }

func (p *LoginPage) EmailInputType() string    { return p.InputType(LoginEmail) }
func (p *LoginPage) PasswordInputType() string { return p.InputType(LoginPassword) }

// RememberMeCount returns how many remember-me checkboxes the page renders.
func (p *LoginPage) RememberMeCount() int { return p.Count(LoginRememberMe) }
