package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("amina@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("Amina <amina@example.com>"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.io"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("correct horse battery"))
	assert.EqualError(t, ValidatePassword("short"), "password must be at least 12 characters")
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))
	assert.Error(t, ValidatePassword("MyPassword2024!"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("name", "Fatou"))
	assert.EqualError(t, ValidateName("title", "   "), "title is required")
	assert.Error(t, ValidateName("name", strings.Repeat("é", 101)))
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://quran.com/1"))
	assert.Error(t, ValidateURL("quran.com"))
	assert.Error(t, ValidateURL("ftp://example.com/file"))
}
