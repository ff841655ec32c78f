package httpapi

import (
	"errors"
	"net/http"

	"bookstall-be/internal/user"
	"bookstall-be/internal/utils"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	} `json:"user"`
}

func newAuthResponse(token string, u user.User) authResponse {
	var resp authResponse
	resp.Token = token
	resp.User.ID = u.ID
	resp.User.Email = u.Email
	resp.User.Name = u.Name
	resp.User.Role = string(u.Role)
	return resp
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if payload.Email == "" || payload.Password == "" || payload.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("email, password and name are required"))
		return
	}

	token, u, err := h.users.Register(r.Context(), user.RegisterParams{
		Email:    payload.Email,
		Password: payload.Password,
		Name:     payload.Name,
		Role:     user.Role(payload.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailExists):
			writeError(w, http.StatusConflict, err)
		case errors.Is(err, user.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, newAuthResponse(token, u))
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, u, err := h.users.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(token, u))
}

// me re-resolves the profile by the token's email, so an id drift between
// token and profile row never locks a user out.
func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	email := utils.GetUserEmailFromContext(r.Context())
	if email == "" {
		writeError(w, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	u, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusNotFound, errors.New("profile not found"))
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse("", u).User)
}
