package pages

import (
	"github.com/playwright-community/playwright-go"

	"github.com/kuitang/qa-suite/internal/errs"
	"github.com/kuitang/qa-suite/internal/testdata"
)

// Registration form selectors.
const (
	RegisterPath = "register.html"

	RegFirstName       = "#firstName"
	RegLastName        = "#lastName"
	RegEmail           = "#email"
	RegPhone           = "#phone"
	RegAddress         = "#address"
	RegCity            = "#city"
	RegZipCode         = "#zipCode"
	RegPassword        = "#password"
	RegConfirmPassword = "#confirmPassword"
	RegTerms           = "#terms"
	RegNewsletter      = "#newsletter"
	RegSubmit          = "button[type='submit']"
	RegLoginLink       = "a[href='index.html']"

	RegEmailError           = "#emailError"
	RegPhoneError           = "#phoneError"
	RegZipError             = "#zipError"
	RegPasswordError        = "#passwordError"
	RegConfirmPasswordError = "#confirmPasswordError"

	RegMessage = "#registerMessage"
	RegForm    = "#registerForm"
)

// RegisterPage is register.html.
type RegisterPage struct {
	Base
}

// NewRegisterPage wraps page without navigating.
func NewRegisterPage(page playwright.Page, site Site) *RegisterPage {
	return &RegisterPage{Base: newBase(page, site, "register")}
}

// Open navigates to the registration form.
func (p *RegisterPage) Open() error {
	return p.Navigate(RegisterPath)
}

func (p *RegisterPage) FillFirstName(v string) error       { return p.Fill(RegFirstName, v) }
func (p *RegisterPage) FillLastName(v string) error        { return p.Fill(RegLastName, v) }
func (p *RegisterPage) FillEmail(v string) error           { return p.Fill(RegEmail, v) }
func (p *RegisterPage) FillPhone(v string) error           { return p.Fill(RegPhone, v) }
func (p *RegisterPage) FillAddress(v string) error         { return p.Fill(RegAddress, v) }
func (p *RegisterPage) FillCity(v string) error            { return p.Fill(RegCity, v) }
func (p *RegisterPage) FillZipCode(v string) error         { return p.Fill(RegZipCode, v) }
func (p *RegisterPage) FillPassword(v string) error        { return p.Fill(RegPassword, v) }
func (p *RegisterPage) FillConfirmPassword(v string) error { return p.Fill(RegConfirmPassword, v) }

func (p *RegisterPage) CheckTerms() error      { return p.SetChecked(RegTerms, true) }
func (p *RegisterPage) UncheckTerms() error    { return p.SetChecked(RegTerms, false) }
func (p *RegisterPage) CheckNewsletter() error { return p.SetChecked(RegNewsletter, true) }

// FillForm types every field of u, including empty ones, and sets the
// checkboxes it asks for. It does not submit.
func (p *RegisterPage) FillForm(u testdata.User) error {
	fields := []struct {
		selector string
		value    string
	}{
		{RegFirstName, u.FirstName},
		{RegLastName, u.LastName},
		{RegEmail, u.Email},
		{RegPhone, u.Phone},
		{RegAddress, u.Address},
		{RegCity, u.City},
		{RegZipCode, u.ZipCode},
		{RegPassword, u.Password},
		{RegConfirmPassword, u.ConfirmPassword},
	}
	for _, f := range fields {
		if err := p.Fill(f.selector, f.value); err != nil {
			return err
		}
	}
	if u.AcceptTerms {
		if err := p.CheckTerms(); err != nil {
			return err
		}
	}
	if u.Newsletter {
		if err := p.CheckNewsletter(); err != nil {
			return err
		}
	}
	return nil
}

// ClickSubmit clicks the submit button without waiting.
func (p *RegisterPage) ClickSubmit() error { return p.Click(RegSubmit) }

// Submit clicks the submit button and waits for the page to settle.
func (p *RegisterPage) Submit() error {
	if err := p.ClickSubmit(); err != nil {
		return err
	}
	p.Settle()
	return nil
}

// Register fills the form with u and submits it.
func (p *RegisterPage) Register(u testdata.User) error {
	if err := p.FillForm(u); err != nil {
		return err
	}
	return p.Submit()
}

// ClickLoginLink follows the "back to login" link.
func (p *RegisterPage) ClickLoginLink() error {
	return p.Click(RegLoginLink)
}

func (p *RegisterPage) EmailError() string           { return p.ElementText(RegEmailError) }
func (p *RegisterPage) PhoneError() string           { return p.ElementText(RegPhoneError) }
func (p *RegisterPage) ZipError() string             { return p.ElementText(RegZipError) }
func (p *RegisterPage) PasswordError() string        { return p.ElementText(RegPasswordError) }
func (p *RegisterPage) ConfirmPasswordError() string { return p.ElementText(RegConfirmPasswordError) }

// Message returns the form-level status message.
func (p *RegisterPage) Message() string { return p.ElementText(RegMessage) }

func (p *RegisterPage) IsMessageVisible() bool  { return p.IsVisible(RegMessage) }
func (p *RegisterPage) HasSuccessMessage() bool { return p.HasMessageClass(RegMessage, "success") }
func (p *RegisterPage) HasErrorMessage() bool   { return p.HasMessageClass(RegMessage, "error") }

// FieldValidationMessage returns the browser's native validation message for
// the input with the given id.
func (p *RegisterPage) FieldValidationMessage(fieldID string) string {
	return p.ValidationMessage("#" + fieldID)
}

// IsFieldRequired reports whether the input with the given id is required.
func (p *RegisterPage) IsFieldRequired(fieldID string) bool {
	return p.IsRequired("#" + fieldID)
}

// IsLabelVisible reports whether the label for the given input id is shown.
func (p *RegisterPage) IsLabelVisible(fieldID string) bool {
	return p.IsVisible("label[for='" + fieldID + "']")
}

func (p *RegisterPage) EmailInputType() string           { return p.InputType(RegEmail) }
func (p *RegisterPage) PasswordInputType() string        { return p.InputType(RegPassword) }
func (p *RegisterPage) ConfirmPasswordInputType() string { return p.InputType(RegConfirmPassword) }

func (p *RegisterPage) IsSubmitVisible() bool    { return p.IsVisible(RegSubmit) }
func (p *RegisterPage) IsSubmitEnabled() bool    { return p.IsEnabled(RegSubmit) }
func (p *RegisterPage) SubmitButtonText() string { return p.ElementText(RegSubmit) }

// SubmitButtonHeight returns the rendered height of the submit button.
func (p *RegisterPage) SubmitButtonHeight() (float64, error) {
	return p.Height(RegSubmit)
}

// FieldValue returns the current value of the input with the given id. A
// missing input is errs.NotFound rather than a wait for it to appear.
func (p *RegisterPage) FieldValue(fieldID string) (string, error) {
	selector := "#" + fieldID
	if p.Count(selector) == 0 {
		return "", errs.New(errs.NotFound, selector+" is not on the page")
	}
	value, err := p.Playwright().Locator(selector).InputValue()
	if err != nil {
		return "", errs.FromBrowser("read value of "+selector, err)
	}
	return value, nil
}
