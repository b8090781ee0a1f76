package errors

import (
	"net/url"
	"strings"
)

// ValidateURL validates a base URL string for safety.
// It ensures the URL has a safe scheme (http or https) and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidConfig, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid URL %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidConfig, "URL must include a host")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return New(ErrCodeInvalidConfig, "URL cannot carry a query or fragment")
	}

	return nil
}
