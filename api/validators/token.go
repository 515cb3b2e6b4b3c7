package validators

import (
	"errors"
	"strings"
)

// ErrMissingToken is returned when no bearer credential was supplied.
var ErrMissingToken = errors.New("missing auth token")

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	token := strings.TrimSpace(header)
	if fields := strings.Fields(token); len(fields) > 0 && strings.EqualFold(fields[0], "bearer") {
		token = strings.TrimSpace(token[len(fields[0]):])
	}
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
