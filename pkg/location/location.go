// Package location reads and writes the shared-pattern token carried in an
// addressable location's query string.
//
// The location is an explicit value: callers pass a URL in and get a new URL
// back, so there is no process-wide "current address" state.
package location

import (
	"net/url"

	cerrors "github.com/matzehuels/circlet/pkg/errors"
	"github.com/matzehuels/circlet/pkg/pattern"
)

// TokenKey is the query field holding the expanded pattern's token.
const TokenKey = "t"

// DefaultBaseURL is where share links point unless configured otherwise.
const DefaultBaseURL = "https://circlet.example/"

// Token returns the token in u, or "" when the field is absent.
func Token(u url.URL) string {
	return u.Query().Get(TokenKey)
}

// WithToken returns a copy of u with the token field set. An empty token
// removes the field instead of storing an empty value.
func WithToken(u url.URL, token string) url.URL {
	q := u.Query()
	if token != "" {
		q.Set(TokenKey, token)
	} else {
		q.Del(TokenKey)
	}
	u.RawQuery = q.Encode()
	return u
}

// WithPattern encodes d and stores it in the token field of a copy of u.
func WithPattern(u url.URL, d pattern.Descriptor) (url.URL, error) {
	token, err := pattern.Encode(d)
	if err != nil {
		return u, err
	}
	return WithToken(u, token), nil
}

// Pattern decodes the token in u. ok is false when u carries no token; err
// is a pattern.DecodeError when the token is present but invalid.
func Pattern(u url.URL) (d pattern.Descriptor, ok bool, err error) {
	token := Token(u)
	if token == "" {
		return pattern.Descriptor{}, false, nil
	}
	d, err = pattern.Decode(token)
	if err != nil {
		return pattern.Descriptor{}, true, err
	}
	return d, true, nil
}

// Parse parses raw as an absolute http(s) URL.
func Parse(raw string) (url.URL, error) {
	if err := cerrors.ValidateURL(raw); err != nil {
		return url.URL{}, err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return url.URL{}, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "parse URL %q", raw)
	}
	return *u, nil
}

// ShareURL returns base with d's token in the query string.
func ShareURL(base string, d pattern.Descriptor) (string, error) {
	token, err := pattern.Encode(d)
	if err != nil {
		return "", err
	}
	return ShareTokenURL(base, token)
}

// ShareTokenURL returns base with token in the query string.
func ShareTokenURL(base, token string) (string, error) {
	u, err := Parse(base)
	if err != nil {
		return "", err
	}
	u = WithToken(u, token)
	return u.String(), nil
}

// TokenFromArg accepts either a bare token or a URL carrying one, which is
// how tokens are pasted on the command line.
func TokenFromArg(arg string) (string, error) {
	if cerrors.ValidateURL(arg) == nil {
		u, err := Parse(arg)
		if err != nil {
			return "", err
		}
		token := Token(u)
		if token == "" {
			return "", cerrors.New(cerrors.ErrCodeInvalidToken, "URL has no %q query field", TokenKey)
		}
		return token, nil
	}
	if err := cerrors.ValidateToken(arg); err != nil {
		return "", err
	}
	return arg, nil
}
