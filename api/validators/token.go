package validators

import "strings"

// BearerToken extracts the token from an Authorization header value. A bare
// token without the scheme is accepted as is.
func BearerToken(header string) string {
	token := strings.TrimSpace(header)
	lower := strings.ToLower(token)
	switch {
	case lower == "bearer":
		return ""
	case strings.HasPrefix(lower, "bearer "):
		return strings.TrimSpace(token[7:])
	}
	return token
}
