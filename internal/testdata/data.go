// Package testdata holds the inputs the suite feeds to the application: user
// records, invalid-value lists, injection payloads, viewports and endpoints.
package testdata

import "strings"

// BaseURL is the deployed application under test.
const BaseURL = "https://qa-test-web-app.vercel.app"

// API endpoints, relative to the API base.
const (
	APIBase          = BaseURL + "/api"
	RegisterEndpoint = "/register"
	LoginEndpoint    = "/login"
)

// InvalidEmails are addresses a correct validator must reject.
var InvalidEmails = []string{
	"",
	"plaintext",
	"@nodomain.com",
	"user@",
	"user@.com",
	"user space@example.com",
	"user@@example.com",
}

// InvalidPhones are phone numbers a correct validator must reject.
var InvalidPhones = []string{
	"",
	"abc",
	"12-34",
	"phone number",
}

// InvalidZips are ZIP codes a correct validator must reject.
var InvalidZips = []string{
	"",
	"ab",
	"abc",
	"!!",
}

// WeakPasswords are passwords too short to be accepted.
var WeakPasswords = []string{
	"",
	"a",
	"ab",
	"abc",
	"1234",
}

// Injection and boundary payloads.
const (
	SQLInjection = "' OR '1'='1'; DROP TABLE users; --"
	XSSPayload   = "<script>alert('XSS')</script>"
)

// LongString exceeds every field's reasonable length.
var LongString = strings.Repeat("a", 256)

// SecurityQuestion is one option of the password-recovery select.
type SecurityQuestion struct {
	Value string
	Text  string
}

// SecurityQuestions lists the selectable recovery questions in display order.
var SecurityQuestions = []SecurityQuestion{
	{Value: "pet", Text: "What was your first pet's name?"},
	{Value: "city", Text: "What city were you born in?"},
	{Value: "school", Text: "What was your high school name?"},
}

// Viewport is a named browser window size.
type Viewport struct {
	Name   string
	Width  int
	Height int
}

var (
	Mobile  = Viewport{Name: "mobile", Width: 375, Height: 667}
	Tablet  = Viewport{Name: "tablet", Width: 768, Height: 1024}
	Desktop = Viewport{Name: "desktop", Width: 1280, Height: 800}
)

// Viewports lists every viewport from smallest to largest.
var Viewports = []Viewport{Mobile, Tablet, Desktop}
