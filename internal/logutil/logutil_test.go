package logutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestIsSensitiveLogField(t *testing.T) {
	t.Parallel()
	sensitive := []string{"password", "confirmPassword", "#loginPassword", "#securityAnswer", "Set-Cookie", "authorization", "csrf_token"}
	for _, key := range sensitive {
		assert.True(t, IsSensitiveLogField(key), key)
	}
	plain := []string{"email", "#firstName", "zipCode", "success", "user"}
	for _, key := range plain {
		assert.False(t, IsSensitiveLogField(key), key)
	}
}

func TestRedactBodyForLog_NestedJSON(t *testing.T) {
	t.Parallel()
	body := []byte(`{"email":"a@example.com","password":"SecurePass123!","user":{"confirmPassword":"x"}}`)
	got := RedactBodyForLog("application/json; charset=utf-8", body)
	assert.NotContains(t, got, "SecurePass123!")
	assert.Contains(t, got, "a@example.com")
	assert.Equal(t, 2, strings.Count(got, redacted))
}

func TestRedactBodyForLog_NonJSONUntouched(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "password=hunter2", RedactBodyForLog("text/plain", []byte("password=hunter2")))
	assert.Equal(t, "{not json", RedactBodyForLog("application/json", []byte("{not json")))
}

func testFormatBodyForLog_NeverLeaksPassword(t *rapid.T) {
	secret := rapid.StringMatching(`[0-9]{4}[A-Za-z0-9!]{4,36}`).Draw(t, "secret")
	max := rapid.IntRange(0, 200).Draw(t, "max")
	body := []byte(`{"email":"user@example.com","password":"` + secret + `"}`)

	got := FormatBodyForLog("application/json", body, max)
	if strings.Contains(got, secret) {
		t.Fatalf("secret leaked in %q", got)
	}
}

func TestFormatBodyForLog_NeverLeaksPassword(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testFormatBodyForLog_NeverLeaksPassword)
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", TruncateForLog("   ", 10))
	assert.Equal(t, `a\nb`, TruncateForLog("a\nb", 10))
	assert.Equal(t, "abc... [truncated]", TruncateForLog("abcdef", 3))
}

func TestRedactFieldValue(t *testing.T) {
	t.Parallel()
	assert.Equal(t, redacted, RedactFieldValue("#password", "SecurePass123!"))
	assert.Equal(t, "John", RedactFieldValue("#firstName", "John"))
}
