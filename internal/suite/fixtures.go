package suite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kuitang/qa-suite/internal/pages"
	"github.com/kuitang/qa-suite/internal/testdata"
)

// URL patterns the application redirects to.
const (
	LoginURLPattern     = "**/index.html**"
	DashboardURLPattern = "**/dashboard.html**"
)

// RegisteredUser registers a fresh user through the form and waits for the
// redirect to the login page. The session is left on that page.
func RegisteredUser(t *testing.T, s *Session) testdata.User {
	t.Helper()

	user := testdata.NewUser()
	reg := s.RegisterPage(t)
	require.NoError(t, reg.Register(user), "submit registration")
	require.NoError(t, reg.WaitForURL(LoginURLPattern, s.env.Config.URLWaitTimeout),
		"registration should redirect to the login page (message: %q)", reg.Message())
	return user
}

// AuthenticatedPage registers a fresh user, logs in and waits for the
// dashboard.
func AuthenticatedPage(t *testing.T, s *Session) (*pages.DashboardPage, testdata.User) {
	t.Helper()

	user := RegisteredUser(t, s)
	login := s.LoginPage(t)
	require.NoError(t, login.Login(user.Email, user.Password), "submit login")

	dash := s.DashboardPage()
	require.NoError(t, dash.WaitForURL(DashboardURLPattern, s.env.Config.URLWaitTimeout),
		"login should redirect to the dashboard (message: %q)", login.Message())
	return dash, user
}
