package plasmerge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVersion verifies that Version() returns the version variable.
// In normal builds, this is set via ldflags. In development, it defaults
// to "dev".
func TestVersion(t *testing.T) {
	result := Version()

	assert.NotEmpty(t, result, "Version() should not return empty string")
	assert.True(t,
		result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

// TestUserAgent verifies that UserAgent() returns a properly formatted
// User-Agent string.
func TestUserAgent(t *testing.T) {
	result := UserAgent()

	assert.NotEmpty(t, result, "UserAgent() should not return empty string")
	assert.True(t, strings.HasPrefix(result, "plasmerge/"),
		"UserAgent() should start with 'plasmerge/', got: %s", result)

	expected := "plasmerge/" + Version()
	assert.Equal(t, expected, result)
}

// TestUserAgentFormat verifies that the UserAgent string has no whitespace
// or other characters that would be problematic in an HTTP header.
func TestUserAgentFormat(t *testing.T) {
	userAgent := UserAgent()

	assert.NotContains(t, userAgent, " ")
	assert.NotContains(t, userAgent, "\t")
	assert.NotContains(t, userAgent, "\n")
	assert.NotContains(t, userAgent, "\r")
	assert.NotContains(t, userAgent, "\x00")
}
