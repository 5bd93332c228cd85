package handlers

import (
	"errors"
	"net/http"

	"github.com/herathmmr/stash/internal/domain"
	"github.com/herathmmr/stash/internal/httpserver/deps"
	"github.com/herathmmr/stash/internal/session"
)

// SavedList serves GET /api/saved: the user's saved items filtered by the
// optional search text and narrowed by the requested tab, with count badges.
func SavedList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "sign_in_required", "Please sign in to use your saved list")
			return
		}

		tab, err := domain.ParseTab(r.URL.Query().Get("tab"))
		if err != nil {
			var ute *domain.UnknownTabError
			if errors.As(err, &ute) {
				writeError(w, http.StatusBadRequest, "unknown_tab", err.Error())
				return
			}
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}

		view := d.Saved.List(r.Context(), s.User(), tab, r.URL.Query().Get("q"))

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, view)
	}
}
