package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/herathmmr/stash/internal/domain"
	"github.com/herathmmr/stash/internal/httpserver/deps"
	"github.com/herathmmr/stash/internal/saved"
	"github.com/herathmmr/stash/internal/session"
)

// Deleting from the saved list is two-phase: request hands the UI a
// confirmation token, confirm executes the removal, cancel abandons it.
// Unconfirmed requests expire on the server side.

type deleteRequestedResponse struct {
	Token     string    `json:"token"`
	Kind      string    `json:"kind"`
	ItemID    string    `json:"item_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type confirmDeleteRequest struct {
	Token string `json:"token"`
}

type deleteDoneResponse struct {
	Deleted bool `json:"deleted"`
}

type deleteCancelledResponse struct {
	Cancelled bool `json:"cancelled"`
}

// RequestDelete serves POST /api/saved/{kind}/{id}/delete.
func RequestDelete(d deps.Deps) http.HandlerFunc {
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

		pending, err := d.Saved.RequestDelete(r.Context(), s.User(), kind, id)
		if err != nil {
			switch {
			case errors.Is(err, saved.ErrItemNotSaved):
				writeError(w, http.StatusNotFound, "not_saved", "item is not in your saved list")
			case errors.Is(err, domain.ErrDeleteAlreadyPending):
				writeError(w, http.StatusConflict, "delete_pending", "another deletion is awaiting confirmation")
			default:
				writeError(w, http.StatusInternalServerError, "internal", "could not start deletion")
			}
			return
		}

		writeJSON(w, http.StatusOK, deleteRequestedResponse{
			Token:     pending.Token,
			Kind:      string(pending.Kind),
			ItemID:    pending.ItemID,
			ExpiresAt: pending.ExpiresAt,
		})
	}
}

// ConfirmDelete serves POST /api/saved/delete/confirm.
func ConfirmDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "sign_in_required", "Please sign in to use your saved list")
			return
		}

		var req confirmDeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
			writeError(w, http.StatusBadRequest, "missing_token", "confirmation token is required")
			return
		}

		if err := d.Saved.ConfirmDelete(r.Context(), s.User(), req.Token); err != nil {
			switch {
			case errors.Is(err, domain.ErrNoPendingDelete):
				writeError(w, http.StatusConflict, "no_pending_delete", "no deletion is awaiting confirmation")
			case errors.Is(err, domain.ErrDeleteTokenMismatch):
				writeError(w, http.StatusConflict, "token_mismatch", "confirmation token does not match the pending deletion")
			case errors.Is(err, domain.ErrDeleteExpired):
				writeError(w, http.StatusGone, "delete_expired", "the deletion request expired, please start over")
			default:
				writeError(w, http.StatusInternalServerError, "internal", "could not confirm deletion")
			}
			return
		}

		writeJSON(w, http.StatusOK, deleteDoneResponse{Deleted: true})
	}
}

// CancelDelete serves POST /api/saved/delete/cancel.
func CancelDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "sign_in_required", "Please sign in to use your saved list")
			return
		}

		if err := d.Saved.CancelDelete(s.User()); err != nil {
			if errors.Is(err, domain.ErrNoPendingDelete) {
				writeError(w, http.StatusConflict, "no_pending_delete", "no deletion is awaiting confirmation")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal", "could not cancel deletion")
			return
		}

		writeJSON(w, http.StatusOK, deleteCancelledResponse{Cancelled: true})
	}
}
