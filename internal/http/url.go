package http

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
)

// placeholderPattern matches a {name} template placeholder.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// FormatURL resolves a URL template into a concrete URL. {protocol} becomes
// http or https depending on the on-prem flag, {backend_url} becomes the
// backend host, and every remaining placeholder is replaced with the
// corresponding caller-supplied value, percent-encoded (device and insight
// identifiers are not guaranteed URL-safe). A placeholder with no
// substitution is an error wrapping ioconnect.ErrMissingSubstitution.
func FormatURL(template, host string, onPrem bool, params map[string]string) (string, error) {
	protocol := "https"
	if onPrem {
		protocol = "http"
	}

	formatted := strings.ReplaceAll(template, "{protocol}", protocol)
	formatted = strings.ReplaceAll(formatted, "{backend_url}", host)

	for key, value := range params {
		formatted = strings.ReplaceAll(formatted, "{"+key+"}", url.PathEscape(value))
	}

	if match := placeholderPattern.FindStringSubmatch(formatted); match != nil {
		return "", fmt.Errorf("formatting %q: %w: %s", template, ioconnect.ErrMissingSubstitution, match[1])
	}

	return formatted, nil
}

// BuildHeaders returns the base header set for a request: a single
// Authorization entry derived from the bearer token (omitted when the token
// is empty), overlaid with the caller's extra headers. The caller wins on
// key collision, and an empty value removes the entry entirely.
func BuildHeaders(token string, extra map[string]string) map[string]string {
	headers := make(map[string]string, len(extra)+1)
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return mergeHeaders(headers, extra)
}

// mergeHeaders overlays overrides onto base in place. Empty values delete.
func mergeHeaders(base, overrides map[string]string) map[string]string {
	for key, value := range overrides {
		if value == "" {
			delete(base, key)

			continue
		}

		base[key] = value
	}

	return base
}
