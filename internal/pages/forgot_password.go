package pages

import (
	"github.com/playwright-community/playwright-go"

	"github.com/kuitang/qa-suite/internal/errs"
)

// Password recovery selectors.
const (
	ForgotPasswordPath = "forgot-password.html"

	ResetEmail            = "#resetEmail"
	ResetSecurityQuestion = "#securityQuestion"
	ResetSecurityAnswer   = "#securityAnswer"
	ResetSubmit           = "button[type='submit']"
	ResetEmailError       = "#resetEmailError"
	ResetMessage          = "#forgotPasswordMessage"
	ResetLoginLink        = "a[href='index.html']"
	ResetRegisterLink     = "a[href='register.html']"
	ResetQuestionLabel    = "label[for='securityQuestion']"
)

// ForgotPasswordPage is forgot-password.html.
type ForgotPasswordPage struct {
	Base
}

// NewForgotPasswordPage wraps page without navigating.
func NewForgotPasswordPage(page playwright.Page, site Site) *ForgotPasswordPage {
	return &ForgotPasswordPage{Base: newBase(page, site, "forgot_password")}
}

// Open navigates to the recovery form.
func (p *ForgotPasswordPage) Open() error {
	return p.Navigate(ForgotPasswordPath)
}

func (p *ForgotPasswordPage) FillEmail(v string) error          { return p.Fill(ResetEmail, v) }
func (p *ForgotPasswordPage) FillSecurityAnswer(v string) error { return p.Fill(ResetSecurityAnswer, v) }

// SelectSecurityQuestion picks an option by value ("pet", "city", "school").
func (p *ForgotPasswordPage) SelectSecurityQuestion(value string) error {
	_, err := p.Playwright().Locator(ResetSecurityQuestion).SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	return errs.FromBrowser("select security question "+value, err)
}

// ClickSendReset submits the form and waits for the page to settle.
func (p *ForgotPasswordPage) ClickSendReset() error {
	if err := p.Click(ResetSubmit); err != nil {
		return err
	}
	p.Settle()
	return nil
}

// RequestReset fills the email, optionally answers a question, and submits.
func (p *ForgotPasswordPage) RequestReset(email, question, answer string) error {
	if err := p.FillEmail(email); err != nil {
		return err
	}
	if question != "" {
		if err := p.SelectSecurityQuestion(question); err != nil {
			return err
		}
	}
	if answer != "" {
		if err := p.FillSecurityAnswer(answer); err != nil {
			return err
		}
	}
	return p.ClickSendReset()
}

func (p *ForgotPasswordPage) ClickLoginLink() error    { return p.Click(ResetLoginLink) }
func (p *ForgotPasswordPage) ClickRegisterLink() error { return p.Click(ResetRegisterLink) }

// Message returns the form-level status message.
func (p *ForgotPasswordPage) Message() string { return p.ElementText(ResetMessage) }

func (p *ForgotPasswordPage) HasSuccessMessage() bool { return p.HasMessageClass(ResetMessage, "success") }
func (p *ForgotPasswordPage) HasErrorMessage() bool   { return p.HasMessageClass(ResetMessage, "error") }

func (p *ForgotPasswordPage) EmailError() string     { return p.ElementText(ResetEmailError) }
func (p *ForgotPasswordPage) EmailInputType() string { return p.InputType(ResetEmail) }

// SecurityQuestionOptions returns the visible text of every option.
func (p *ForgotPasswordPage) SecurityQuestionOptions() []string {
	return p.AllTexts(ResetSecurityQuestion + " option")
}

// SecurityQuestionLabel returns the text of the question's label.
func (p *ForgotPasswordPage) SecurityQuestionLabel() string {
	return p.ElementText(ResetQuestionLabel)
}
