package report

import (
	"path/filepath"
	"strings"
)

// OtherCategory labels tests from files outside the known set.
const OtherCategory = "Other"

type categoryRule struct {
	stem  string
	label string
}

var categoryRules = []categoryRule{
	{"registration", "Registration"},
	{"login", "Login"},
	{"forgot_password", "Forgot Password"},
	{"dashboard", "Dashboard"},
	{"responsive", "Responsive Design"},
	{"api", "API"},
	{"security", "Security"},
}

// Categories lists every label in display order, ending with Other.
func Categories() []string {
	out := make([]string, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		out = append(out, rule.label)
	}
	return append(out, OtherCategory)
}

// CategoryFor maps a test file such as "forgot_password_test.go" to its
// label. Files named "<stem>_<anything>_test.go" share the stem's label.
func CategoryFor(fileName string) string {
	stem := strings.TrimSuffix(filepath.Base(fileName), "_test.go")
	for _, rule := range categoryRules {
		if stem == rule.stem || strings.HasPrefix(stem, rule.stem+"_") {
			return rule.label
		}
	}
	return OtherCategory
}
