package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/kuitang/qa-suite/internal/errs"
)

// Dashboard selectors.
const (
	DashboardPath = "dashboard.html"

	DashUserName     = "#userName"
	DashLastLogin    = "#lastLogin"
	DashLogout       = "button.btn-secondary"
	DashStatCard     = ".stat-card"
	DashActionButton = ".btn-action"
	DashActivityItem = ".activity-list li"
	DashToast        = "#dashboardMessage"
)

// Stat card positions, 1-based as in :nth-child.
const (
	StatProfileCompletion = 1
	StatAccountStatus     = 2
	StatNotifications     = 3
	StatRewardsPoints     = 4
)

// DashboardPage is dashboard.html.
type DashboardPage struct {
	Base
}

// NewDashboardPage wraps page without navigating.
func NewDashboardPage(page playwright.Page, site Site) *DashboardPage {
	return &DashboardPage{Base: newBase(page, site, "dashboard")}
}

// Open navigates to the dashboard. Without a session the application
// redirects to the login page.
func (p *DashboardPage) Open() error {
	return p.Navigate(DashboardPath)
}

func (p *DashboardPage) UserName() string  { return p.ElementText(DashUserName) }
func (p *DashboardPage) LastLogin() string { return p.ElementText(DashLastLogin) }

// ClickLogout presses the logout button. Callers wait for the redirect.
func (p *DashboardPage) ClickLogout() error { return p.Click(DashLogout) }

func (p *DashboardPage) StatCardCount() int     { return p.Count(DashStatCard) }
func (p *DashboardPage) ActionButtonCount() int { return p.Count(DashActionButton) }
func (p *DashboardPage) ActivityCount() int     { return p.Count(DashActivityItem) }

// StatValue returns the value shown on the stat card at a 1-based position.
func (p *DashboardPage) StatValue(position int) string {
	return p.ElementText(fmt.Sprintf("%s:nth-child(%d) .stat-value", DashStatCard, position))
}

// NotificationsCount returns the notifications stat as displayed.
func (p *DashboardPage) NotificationsCount() string {
	return p.StatValue(StatNotifications)
}

// ClickActionButton clicks the action button at a 0-based index and waits
// for the page to settle.
func (p *DashboardPage) ClickActionButton(index int) error {
	if err := p.Playwright().Locator(DashActionButton).Nth(index).Click(); err != nil {
		return errs.FromBrowser(fmt.Sprintf("click action button %d", index), err)
	}
	p.Settle()
	return nil
}

func (p *DashboardPage) ToastMessage() string { return p.ElementText(DashToast) }
func (p *DashboardPage) IsToastVisible() bool { return p.IsVisible(DashToast) }

// SessionStorageKeys lists the keys held in sessionStorage.
func (p *DashboardPage) SessionStorageKeys() ([]string, error) {
	return p.evaluateStrings("() => Object.keys(sessionStorage)")
}

// LocalStorageKeys lists the keys held in localStorage.
func (p *DashboardPage) LocalStorageKeys() ([]string, error) {
	return p.evaluateStrings("() => Object.keys(localStorage)")
}

// SessionStorageItem returns a sessionStorage value and whether it exists.
func (p *DashboardPage) SessionStorageItem(key string) (string, bool, error) {
	value, err := p.Playwright().Evaluate("k => sessionStorage.getItem(k)", key)
	if err != nil {
		return "", false, errs.FromBrowser("read sessionStorage "+key, err)
	}
	if value == nil {
		return "", false, nil
	}
	s, ok := value.(string)
	return s, ok, nil
}
