package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finny/internal/http/respond"
	"github.com/MrJamesThe3rd/finny/internal/ledger"
)

type Handler struct {
	ledger *ledger.Ledger
	tokens *Tokens
}

func NewHandler(l *ledger.Ledger, tokens *Tokens) *Handler {
	return &Handler{ledger: l, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/register", h.register)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func ToUserResponse(u ledger.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Username: u.Username, Email: u.Email}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	u, err := h.ledger.Authenticate(req.Username, req.Password)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{Token: token, User: ToUserResponse(u)})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	u, err := h.ledger.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ledger.ErrUsernameTaken) {
			respond.Error(w, http.StatusConflict, "Username already taken")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    ToUserResponse(u),
	})
}
