// Package validation checks and cleans values that come from configuration
// files and request bodies.
package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL accepts absolute http and https URLs with a host and no
// whitespace or shell metacharacters.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %q (only http/https allowed)", parsed.Scheme)
	}

	if i := strings.IndexAny(rawURL, ";|`$<>\"'\\ \t\n\r"); i >= 0 {
		return fmt.Errorf("URL contains invalid character %q", rawURL[i])
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a valid hostname")
	}

	return nil
}

// ValidateOrigin checks an Origin header value: an http(s) URL with a host and
// nothing after it.
func ValidateOrigin(origin string) error {
	if err := ValidateURL(origin); err != nil {
		return err
	}
	parsed, _ := url.Parse(origin)
	if parsed.Path != "" && parsed.Path != "/" || parsed.RawQuery != "" || parsed.Fragment != "" {
		return fmt.Errorf("origin %q must not have a path, query or fragment", origin)
	}
	return nil
}
