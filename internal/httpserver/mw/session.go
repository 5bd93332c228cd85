package mw

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/herathmmr/stash/internal/logger"
	"github.com/herathmmr/stash/internal/session"
)

// signInResponse is the signal the portal front end turns into its sign-in
// modal/redirect.
type signInResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Session is the sign-in gate. It extracts the bearer token, decodes its
// claims and attaches the session to the request context. Requests without a
// usable session — no token, an undecodable one, or an expired exp claim —
// get 401 with a sign_in_required signal and never reach the handler, so no
// store mutation can happen unauthenticated.
//
// The token is NOT verified against the issuer: saved lists are per-user
// convenience state, and the gate is a product decision, not a security
// boundary.
func Session(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				signInRequired(w)
				return
			}

			claims, err := session.DecodeClaims(token)
			if err != nil {
				log.Debug("undecodable session token",
					logger.Error(err))
				signInRequired(w)
				return
			}
			if claims.Expired(time.Now()) {
				log.Debug("expired session token",
					logger.String("sub", claims.Subject))
				signInRequired(w)
				return
			}

			s := &session.Session{Token: token, Claims: claims}
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}

// bearerToken pulls the token out of the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func signInRequired(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(signInResponse{
		Error:   "sign_in_required",
		Message: "Please sign in to use your saved list",
	})
}
