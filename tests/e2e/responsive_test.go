//go:build e2e

package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuitang/qa-suite/internal/pages"
	"github.com/kuitang/qa-suite/internal/suite"
	"github.com/kuitang/qa-suite/internal/testdata"
)

// reload refreshes the page and waits for the network to go idle.
func reload(t *testing.T, s *suite.Session) {
	t.Helper()
	_, err := s.Page().Reload()
	require.NoError(t, err, "reload")
	require.NoError(t, s.Page().WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}), "wait for network idle after reload")
}

// dashboardAt logs a fresh user in, then resizes the dashboard to v.
func dashboardAt(t *testing.T, v testdata.Viewport) *pages.DashboardPage {
	t.Helper()
	s := newSession(t)
	dash, _ := suite.AuthenticatedPage(t, s)
	s.SetViewport(t, v)
	reload(t, s)
	return dash
}

// TC-R01: BUG - Error messages hidden on mobile via CSS.
//
// @media (max-width: 767px) sets .error-message to display: none !important,
// so mobile users never see validation errors.
func TestResponsive_ErrorMessagesVisibleOnMobile(t *testing.T) {
	s := newSession(t, suite.WithViewport(testdata.Mobile))
	reg := s.RegisterPage(t)

	require.NoError(t, reg.Register(testdata.User{
		FirstName:       "Test",
		LastName:        "User",
		Email:           "invalid",
		Phone:           "0911234567",
		Address:         "123 St",
		City:            "Split",
		ZipCode:         "21000",
		Password:        "SecurePass123!",
		ConfirmPassword: "SecurePass123!",
		AcceptTerms:     true,
	}))

	assert.True(t, reg.IsVisible(pages.RegEmailError),
		"BUG: Error messages are hidden on mobile! CSS sets .error-message { display: none !important; } at max-width: 767px")
}

// TC-R02: BUG - Submit button has reduced height on mobile.
//
// @media (max-width: 767px) caps .btn-primary at max-height: 35px with a
// negative bottom margin. The button still works but is shorter than on
// desktop.
func TestResponsive_SubmitButtonHeightOnMobile(t *testing.T) {
	s := newSession(t, suite.WithViewport(testdata.Mobile))
	reg := s.RegisterPage(t)

	height, err := reg.SubmitButtonHeight()
	require.NoError(t, err, "Submit button should have a bounding box")
	assert.GreaterOrEqual(t, height, 40.0,
		"BUG: Submit button height is %vpx on mobile (expected >= 40px). CSS max-height: 35px reduces it below desktop size.", height)
}

// TC-R03: BUG - Newsletter checkbox has overlay on mobile.
func TestResponsive_NewsletterOverlayOnMobile(t *testing.T) {
	s := newSession(t, suite.WithViewport(testdata.Mobile))
	reg := s.RegisterPage(t)

	assert.False(t, reg.IsVisible(".mobile-hidden-checkbox .overlay-image-small"),
		"BUG: Newsletter checkbox has an overlay covering it on mobile")
}

// TC-R04: BUG - Street address field has overlay on tablet.
func TestResponsive_AddressOverlayOnTablet(t *testing.T) {
	s := newSession(t, suite.WithViewport(testdata.Tablet))
	reg := s.RegisterPage(t)

	assert.False(t, reg.IsVisible(".tablet-hidden .overlay-image-tablet"),
		"BUG: Street address field has an advertisement overlay on tablet viewport")
}

// TC-R05: BUG - Security question section has overlay on mobile.
func TestResponsive_SecuritySectionOverlayOnMobile(t *testing.T) {
	s := newSession(t, suite.WithViewport(testdata.Mobile))
	fp := s.ForgotPasswordPage(t)

	assert.False(t, fp.IsVisible(".mobile-hidden-section .overlay-image-security"),
		"BUG: Security question section has overlay on mobile viewport")
}

// TC-R06: BUG - Remember Me checkbox has overlay on mobile.
func TestResponsive_RememberMeOverlayOnMobile(t *testing.T) {
	s := newSession(t)
	s.SetViewport(t, testdata.Mobile)
	login := s.LoginPage(t)
	reload(t, s)

	assert.False(t, login.IsVisible(".mobile-hidden .overlay-image"),
		"BUG: Remember Me checkbox has overlay covering it on mobile")
}

// TC-R07: BUG - Rewards card has overlay on tablet.
func TestResponsive_RewardsCardOverlayOnTablet(t *testing.T) {
	dash := dashboardAt(t, testdata.Tablet)

	assert.False(t, dash.IsVisible(".mobile-hidden-card .overlay-image-rewards"),
		"BUG: Rewards card has an overlay covering it on tablet viewport")
}

// TC-R08: BUG - Activity list item has overlay on tablet.
func TestResponsive_ActivityOverlayOnTablet(t *testing.T) {
	dash := dashboardAt(t, testdata.Tablet)

	assert.False(t, dash.IsVisible(".tablet-hidden-activity .overlay-image-activity"),
		"BUG: Activity list item has an overlay covering it on tablet viewport")
}

// TC-R09: BUG - Dashboard stat card has overlay on tablet.
func TestResponsive_StatCardOverlayOnTablet(t *testing.T) {
	dash := dashboardAt(t, testdata.Tablet)

	assert.False(t, dash.IsVisible(".tablet-hidden-card .overlay-image-dashboard"),
		"BUG: Dashboard stat card has an overlay covering it on tablet viewport")
}

// TC-R10: BUG - Download Report button has overlay on mobile.
func TestResponsive_DownloadReportOverlayOnMobile(t *testing.T) {
	dash := dashboardAt(t, testdata.Mobile)

	assert.False(t, dash.IsVisible(".mobile-hidden-action .button-overlay"),
		"BUG: Download Report button has an overlay covering it on mobile viewport")
}
