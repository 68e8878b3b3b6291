package profile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finny/internal/http/auth"
	"github.com/MrJamesThe3rd/finny/internal/http/respond"
	"github.com/MrJamesThe3rd/finny/internal/ledger"
)

type Handler struct {
	ledger *ledger.Ledger
}

func NewHandler(l *ledger.Ledger) *Handler {
	return &Handler{ledger: l}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.me)
	r.Put("/update", h.update)
	r.Delete("/delete", h.delete)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.ledger.User(auth.UserID(r.Context()))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, auth.ToUserResponse(u))
}

type updateRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if (req.CurrentPassword == "") != (req.NewPassword == "") {
		respond.Error(w, http.StatusBadRequest, "Both current and new passwords are required")
		return
	}

	u, err := h.ledger.UpdateProfile(auth.UserID(r.Context()), ledger.ProfileChange{
		Username:        req.Username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated",
		"user":    auth.ToUserResponse(u),
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.Delete(auth.UserID(r.Context())); err != nil {
		writeLedgerError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "User not found")
	case errors.Is(err, ledger.ErrWrongPassword):
		respond.Error(w, http.StatusBadRequest, "Current password is incorrect")
	case errors.Is(err, ledger.ErrUsernameTaken):
		respond.Error(w, http.StatusConflict, "Username already taken")
	default:
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}
