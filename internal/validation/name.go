package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateName requires a non-blank value of at most 100 characters. field
// names the value in the error message.
func ValidateName(field, name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return fmt.Errorf("%s is required", field)
	}

	if len([]rune(trimmed)) > 100 {
		return fmt.Errorf("%s is too long (max 100 characters)", field)
	}

	return nil
}

// ValidateURL accepts absolute http and https links.
func ValidateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid url: %q", raw)
	}
	return nil
}
