package web

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// admin gates a mutation: read-only servers refuse with 403, and when an
// admin token is configured the request must carry it as a bearer token.
func (s *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.readOnly() {
			writeError(w, http.StatusForbidden, "read-only server")
			return
		}
		if want := s.adminToken(); want != "" {
			if !tokenMatches(want, bearerToken(r)) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="deskfolio"`)
				writeError(w, http.StatusUnauthorized, "admin token required")
				return
			}
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func tokenMatches(want, got string) bool {
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
