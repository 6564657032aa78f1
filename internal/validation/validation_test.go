package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"amy@example.com",
		"amy.pond@example.co.uk",
		"amy+tag@example.com",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), "email %q", email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"amy@",
		"amy @example.com",
		"a@" + strings.Repeat("b", 260) + ".com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), "email %q", email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))

	assert.NoError(t, ValidatePassword("longenough"))
	assert.NoError(t, ValidatePassword(strings.Repeat("x", 72)))
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"amy", "amy.pond", "amy_pond", "User123", strings.Repeat("a", 30)}
	for _, username := range valid {
		assert.NoError(t, ValidateUsername(username), "username %q", username)
	}

	invalid := []string{
		"",
		"ab",
		"amy pond",
		"amy-pond",
		"amy@pond",
		strings.Repeat("a", 31),
	}
	for _, username := range invalid {
		assert.Error(t, ValidateUsername(username), "username %q", username)
	}
}

func TestSanitizeContent(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeContent("hello world"))
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", SanitizeContent("<script>alert(1)</script>"))
	assert.Equal(t, "a &amp; b", SanitizeContent("a & b"))
	assert.Equal(t, "say &quot;hi&quot;", SanitizeContent(`say "hi"`))
	assert.Equal(t, "", SanitizeContent(""))
}
