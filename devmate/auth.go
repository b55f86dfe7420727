package devmate

import "net/http"

const headerAuthorization = "Authorization"

// mergeAuth returns a copy of headers with the token authorization set.
// The caller's header set is left untouched
func mergeAuth(headers http.Header, token string) http.Header {
	merged := headers.Clone()
	if merged == nil {
		merged = make(http.Header, 1)
	}
	merged.Set(headerAuthorization, "Token "+token)
	return merged
}
