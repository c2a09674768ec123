// Package validation holds the server entry field rules shared by the TUI
// dialog and the CLI.
package validation

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"regexp"
	"strings"

	"github.com/fredbi/uri"
)

// Field names used in FieldError.
const (
	FieldName     = "name"
	FieldURL      = "url"
	FieldIdentity = "identity"
)

// User facing messages.
const (
	MsgNameRequired     = "Name is required."
	MsgURLRequired      = "URL is required."
	MsgURLScheme        = "URL should start with http:// or https://."
	MsgURLMalformed     = "URL is not formatted correctly."
	MsgIdentityRequired = "Identity is required."
	MsgAllRequired      = "Name and URL and Identity are required."
)

var httpScheme = regexp.MustCompile(`^https?://`)

// FieldError is a blocking but correctable problem with one field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// HasHTTPScheme reports whether raw, once trimmed, starts with http:// or https://.
func HasHTTPScheme(raw string) bool {
	return httpScheme.MatchString(strings.TrimSpace(raw))
}

// IsValidURL reports whether raw is a syntactically valid absolute URL with a
// host. IP literal hosts only need to parse; DNS hosts are checked by uri.
func IsValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return false
	}
	if _, err := netip.ParseAddr(parsed.Hostname()); err == nil {
		return true
	}
	return uri.IsURI(raw)
}

// Name checks the display name.
func Name(value string) *FieldError {
	if len(value) == 0 {
		return &FieldError{Field: FieldName, Message: MsgNameRequired}
	}
	return nil
}

// URL checks the server URL. The checks run in order and the first failure wins.
func URL(value string) *FieldError {
	switch {
	case len(value) == 0:
		return &FieldError{Field: FieldURL, Message: MsgURLRequired}
	case !HasHTTPScheme(value):
		return &FieldError{Field: FieldURL, Message: MsgURLScheme}
	case !IsValidURL(value):
		return &FieldError{Field: FieldURL, Message: MsgURLMalformed}
	}
	return nil
}

// Identity checks the identity file path. The file is not required to exist.
func Identity(value string) *FieldError {
	if len(value) == 0 {
		return &FieldError{Field: FieldIdentity, Message: MsgIdentityRequired}
	}
	return nil
}

// Result is the outcome of checking all three fields. A nil entry means the
// field is fine.
type Result struct {
	Name     *FieldError
	URL      *FieldError
	Identity *FieldError
}

// Check runs every field rule.
func Check(name, rawURL, identity string) Result {
	return Result{
		Name:     Name(name),
		URL:      URL(rawURL),
		Identity: Identity(identity),
	}
}

// Valid reports whether no field has an error.
func (r Result) Valid() bool {
	return r.Name == nil && r.URL == nil && r.Identity == nil
}

// Message returns the single line summary shown to the user, or "" when valid.
func (r Result) Message() string {
	if r.Name != nil && r.URL != nil && r.Identity != nil {
		return MsgAllRequired
	}
	for _, fe := range []*FieldError{r.Name, r.URL, r.Identity} {
		if fe != nil {
			return fe.Message
		}
	}
	return ""
}

// Err returns the summary as an error, or nil when valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return errors.New(r.Message())
}
