// Package pages wraps the application's four screens in page objects. Every
// page object embeds Base, which owns the playwright.Page and implements the
// shared navigation, query and wait primitives.
//
// Actions (Fill, Click, Navigate, waits) return errors. Queries (ElementText,
// IsVisible, Attribute, Count) never fail: an absent element reads as empty,
// invisible or zero, so assertions stay on the test side.
package pages

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/kuitang/qa-suite/internal/errs"
	"github.com/kuitang/qa-suite/internal/logutil"
	"github.com/kuitang/qa-suite/internal/obs"
	"github.com/kuitang/qa-suite/internal/testdata"
)

// DefaultSettleDelay is the pause after submissions and clicks that lets the
// application's client-side script update the DOM.
const DefaultSettleDelay = 500 * time.Millisecond

// Site locates the application and carries timing shared by all pages.
type Site struct {
	BaseURL     string
	SettleDelay time.Duration
}

// DefaultSite targets the deployed application.
func DefaultSite() Site {
	return Site{BaseURL: testdata.BaseURL, SettleDelay: DefaultSettleDelay}
}

// URL resolves a page path such as "register.html" against the base URL.
func (s Site) URL(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Page is implemented by every page object.
type Page interface {
	Open() error
	URL() string
	Title() (string, error)
}

// Base implements the primitives shared by all page objects.
type Base struct {
	page playwright.Page
	site Site
	log  *slog.Logger
}

func newBase(page playwright.Page, site Site, name string) Base {
	return Base{
		page: page,
		site: site,
		log:  obs.Pkg("pages").With("page", name),
	}
}

// Playwright exposes the underlying page for checks no page object covers.
func (b *Base) Playwright() playwright.Page {
	return b.page
}

// Navigate loads path and waits for the network to go idle.
func (b *Base) Navigate(path string) error {
	target := b.site.URL(path)
	b.log.Debug("navigate", "url", target)
	if _, err := b.page.Goto(target); err != nil {
		return errs.FromBrowser("navigate to "+target, err)
	}
	if err := b.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}); err != nil {
		return errs.FromBrowser("wait for network idle on "+target, err)
	}
	return nil
}

// Title returns the document title.
func (b *Base) Title() (string, error) {
	title, err := b.page.Title()
	if err != nil {
		return "", errs.FromBrowser("read title", err)
	}
	return title, nil
}

// URL returns the current page URL.
func (b *Base) URL() string {
	return b.page.URL()
}

// Content returns the full page HTML.
func (b *Base) Content() (string, error) {
	html, err := b.page.Content()
	if err != nil {
		return "", errs.FromBrowser("read content", err)
	}
	return html, nil
}

// WaitForURL blocks until the URL matches the glob pattern, e.g.
// "**/dashboard.html**". Expiry yields an errs.Timeout error.
func (b *Base) WaitForURL(pattern string, timeout time.Duration) error {
	err := b.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		b.log.Debug("wait_for_url_failed", "pattern", pattern, "url", b.page.URL())
		return errs.FromBrowser(fmt.Sprintf("wait for URL %s (at %s)", pattern, b.page.URL()), err)
	}
	return nil
}

// WaitForVisible blocks until the first match of selector is visible.
func (b *Base) WaitForVisible(selector string, timeout time.Duration) error {
	err := b.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	return errs.FromBrowser("wait for "+selector, err)
}

// Settle pauses for the site's settle delay.
func (b *Base) Settle() {
	if b.site.SettleDelay <= 0 {
		return
	}
	b.page.WaitForTimeout(float64(b.site.SettleDelay.Milliseconds()))
}

// Fill replaces the value of the input matched by selector.
func (b *Base) Fill(selector, value string) error {
	b.log.Debug("fill", "selector", selector, "value", logutil.RedactFieldValue(selector, value))
	if err := b.page.Locator(selector).Fill(value); err != nil {
		return errs.FromBrowser("fill "+selector, err)
	}
	return nil
}

// Click clicks the first element matched by selector.
func (b *Base) Click(selector string) error {
	b.log.Debug("click", "selector", selector)
	if err := b.page.Locator(selector).First().Click(); err != nil {
		return errs.FromBrowser("click "+selector, err)
	}
	return nil
}

// SetChecked checks or unchecks a checkbox.
func (b *Base) SetChecked(selector string, checked bool) error {
	loc := b.page.Locator(selector)
	var err error
	if checked {
		err = loc.Check()
	} else {
		err = loc.Uncheck()
	}
	if err != nil {
		return errs.FromBrowser("set checked "+selector, err)
	}
	return nil
}

// Count returns how many elements match selector.
func (b *Base) Count(selector string) int {
	n, err := b.page.Locator(selector).Count()
	if err != nil {
		return 0
	}
	return n
}

// ElementText returns the trimmed text of the first match, or "" when nothing
// matches. It never waits for the element to appear.
func (b *Base) ElementText(selector string) string {
	if b.Count(selector) == 0 {
		return ""
	}
	text, err := b.page.Locator(selector).First().TextContent()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// AllTexts returns the trimmed text of every match.
func (b *Base) AllTexts(selector string) []string {
	texts, err := b.page.Locator(selector).AllTextContents()
	if err != nil {
		return nil
	}
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = strings.TrimSpace(text)
	}
	return out
}

// IsVisible reports whether the first match is visible.
func (b *Base) IsVisible(selector string) bool {
	visible, err := b.page.Locator(selector).First().IsVisible()
	return err == nil && visible
}

// Attribute returns an attribute of the first match, or "" when the element
// or the attribute is missing.
func (b *Base) Attribute(selector, name string) string {
	if b.Count(selector) == 0 {
		return ""
	}
	value, err := b.page.Locator(selector).First().GetAttribute(name)
	if err != nil {
		return ""
	}
	return value
}

// HasMessageClass reports whether selector is visible and its class list
// contains class, e.g. "success" or "error".
func (b *Base) HasMessageClass(selector, class string) bool {
	if !b.IsVisible(selector) {
		return false
	}
	return strings.Contains(b.Attribute(selector, "class"), class)
}

// ValidationMessage returns the browser's constraint-validation message for
// an input, such as "Please fill out this field.".
func (b *Base) ValidationMessage(selector string) string {
	if b.Count(selector) == 0 {
		return ""
	}
	value, err := b.page.Locator(selector).First().Evaluate("el => el.validationMessage", nil)
	if err != nil {
		return ""
	}
	msg, _ := value.(string)
	return msg
}

// IsRequired reports whether an input carries the required attribute.
func (b *Base) IsRequired(selector string) bool {
	if b.Count(selector) == 0 {
		return false
	}
	value, err := b.page.Locator(selector).First().Evaluate("el => el.required", nil)
	if err != nil {
		return false
	}
	required, _ := value.(bool)
	return required
}

// InputType returns the type attribute of an input.
func (b *Base) InputType(selector string) string {
	return b.Attribute(selector, "type")
}

// Height returns the rendered height of the first match in CSS pixels.
func (b *Base) Height(selector string) (float64, error) {
	box, err := b.page.Locator(selector).First().BoundingBox()
	if err != nil {
		return 0, errs.FromBrowser("bounding box of "+selector, err)
	}
	if box == nil {
		return 0, errs.New(errs.NotFound, selector+" is not rendered")
	}
	return box.Height, nil
}

// IsEnabled reports whether the first match is enabled.
func (b *Base) IsEnabled(selector string) bool {
	enabled, err := b.page.Locator(selector).First().IsEnabled()
	return err == nil && enabled
}

// evaluateStrings runs a page-level expression returning a string array.
func (b *Base) evaluateStrings(expression string) ([]string, error) {
	value, err := b.page.Evaluate(expression)
	if err != nil {
		return nil, errs.FromBrowser("evaluate "+expression, err)
	}
	items, ok := value.([]interface{})
	if !ok {
		if value == nil {
			return []string{}, nil
		}
		return nil, errs.New(errs.Internal, fmt.Sprintf("evaluate %s: unexpected result %T", expression, value))
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}
