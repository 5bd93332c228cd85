package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/herathmmr/stash/internal/content"
	"github.com/herathmmr/stash/internal/domain"
	"github.com/herathmmr/stash/internal/httpserver/deps"
	"github.com/herathmmr/stash/internal/logger"
	"github.com/herathmmr/stash/internal/session"
)

// Toggle serves POST /api/saved/{kind}/{id}/toggle. Saving snapshots the
// canonical record from the content API; unsaving only needs the ID. The
// response tells the UI the new membership plus the message to show.
func Toggle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "sign_in_required", "Please sign in to use your saved list")
			return
		}

		kind, err := domain.ParseKind(chi.URLParam(r, "kind"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown_kind", err.Error())
			return
		}
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing_id", "item id is required")
			return
		}

		result, err := d.Saved.Toggle(r.Context(), s.User(), kind, id)
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				writeError(w, http.StatusNotFound, "item_not_found", "item does not exist")
				return
			}
			d.Logger.Error("toggle failed",
				logger.String("user", s.User()),
				logger.String("kind", string(kind)),
				logger.String("item", id),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "content_unavailable", "could not fetch the item to save")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
