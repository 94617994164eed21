package handler

import (
	"log/slog"
	"net/http"

	"github.com/photoapp/photoapp/internal/auth"
	"github.com/photoapp/photoapp/internal/service"
	"github.com/photoapp/photoapp/internal/validate"
)

// AuthHandler serves the public authentication endpoints: register, login
// and token refresh.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// HandleRegister creates a new user account.
//
// HTTP: POST /register
// BODY: {"first_name","last_name","email","password"}
//
// 201 with the created user on success; 400 with per-field errors when the
// payload fails validation. The password hash never appears in the response.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	v.MinLength("first_name", req.FirstName, 3)
	v.MinLength("last_name", req.LastName, 3)
	v.Email("email", req.Email)
	v.MinLength("password", req.Password, 6)
	if err := v.Err(); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.svc.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and returns an access/refresh token pair.
//
// HTTP: POST /login
// BODY: {"email","password"}
//
// Unknown email and wrong password both yield the same 401 - the response
// never confirms whether an address is registered.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	v.Email("email", req.Email)
	v.MinLength("password", req.Password, 6)
	if err := v.Err(); err != nil {
		writeError(w, err)
		return
	}

	pair, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, pair)
}

// HandleRefresh mints a fresh access token from a refresh token.
//
// HTTP: POST /refresh
// The refresh token travels in the Authorization header, Bearer scheme -
// the same place an access token would go, but this route is public and
// verifies against the refresh secret instead.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := auth.BearerToken(r)
	if !ok {
		writeFail(w, http.StatusUnauthorized, authRequiredMessage)
		return
	}

	access, err := h.svc.Refresh(r.Context(), refreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"access_token": access})
}
