package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/photoapp/photoapp/internal/auth"
	"github.com/photoapp/photoapp/internal/repository/sqlite"
	"github.com/photoapp/photoapp/internal/service"
)

// newTestAPI wires handlers, services and an in-memory database into a router
// with the same route table as the real server. Tests exercise the full
// stack: routing, auth guard, validation, service rules, storage.
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewTokenService(
		"access-secret-for-tests!!",
		"refresh-secret-for-tests!",
		15*time.Minute,
		time.Hour,
	)
	require.NoError(t, err)
	passwords := auth.NewPasswordService(bcrypt.MinCost)

	users := sqlite.NewUserRepo(db)
	albums := sqlite.NewAlbumRepo(db)
	photos := sqlite.NewPhotoRepo(db)

	authHandler := NewAuthHandler(service.NewAuthService(users, tokens, passwords, logger), logger)
	profileHandler := NewProfileHandler(service.NewProfileService(users, passwords, logger), logger)
	albumHandler := NewAlbumHandler(service.NewAlbumService(albums, photos, logger), logger)
	photoHandler := NewPhotoHandler(service.NewPhotoService(photos, logger), logger)

	r := chi.NewRouter()
	r.Get("/", HandleRoot)
	r.NotFound(HandleNotFound)

	r.Post("/register", authHandler.HandleRegister)
	r.Post("/login", authHandler.HandleLogin)
	r.Post("/refresh", authHandler.HandleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/profile", profileHandler.HandleGet)
		r.Patch("/profile", profileHandler.HandleUpdate)

		r.Get("/albums", albumHandler.HandleList)
		r.Post("/albums", albumHandler.HandleCreate)
		r.Get("/albums/{albumId}", albumHandler.HandleGet)
		r.Patch("/albums/{albumId}", albumHandler.HandleUpdate)
		r.Delete("/albums/{albumId}", albumHandler.HandleDelete)
		r.Post("/albums/{albumId}/photos", albumHandler.HandleAddPhotos)
		r.Delete("/albums/{albumId}/photos/{photoId}", albumHandler.HandleRemovePhoto)

		r.Get("/photos", photoHandler.HandleList)
		r.Post("/photos", photoHandler.HandleCreate)
		r.Get("/photos/{photoId}", photoHandler.HandleGet)
		r.Patch("/photos/{photoId}", photoHandler.HandleUpdate)
		r.Delete("/photos/{photoId}", photoHandler.HandleDelete)
	})

	return r
}

// envelope mirrors the three response shapes; only the fields present in a
// given response are populated.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// doJSON performs a request against the test API and decodes the envelope.
// A nil body sends no payload; a non-nil one is marshalled to JSON. token,
// when non-empty, goes into the Authorization header as a bearer credential.
func doJSON(t *testing.T, api http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"response is not valid JSON: %s", rec.Body.String())
	return rec, env
}

// registerAndLogin creates an account and returns its access token, refresh
// token and user id.
func registerAndLogin(t *testing.T, api http.Handler, email string) (accessToken, refreshToken string, userID int64) {
	t.Helper()

	rec, env := doJSON(t, api, http.MethodPost, "/register", "", map[string]string{
		"first_name": "Anna",
		"last_name":  "Andersson",
		"email":      email,
		"password":   "hemligt1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "register: %s", rec.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env = doJSON(t, api, http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": "hemligt1",
	})
	require.Equal(t, http.StatusOK, rec.Code, "login: %s", rec.Body.String())

	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &pair))
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	return pair.AccessToken, pair.RefreshToken, created.ID
}

func TestRegister(t *testing.T) {
	api := newTestAPI(t)

	rec, env := doJSON(t, api, http.MethodPost, "/register", "", map[string]string{
		"first_name": "Anna",
		"last_name":  "Andersson",
		"email":      "anna@example.com",
		"password":   "hemligt1",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "success", env.Status)

	var user map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "anna@example.com", user["email"])
	assert.NotZero(t, user["id"])
	// The hash never leaves the server.
	assert.NotContains(t, user, "password")
}

func TestRegister_ValidationErrors(t *testing.T) {
	api := newTestAPI(t)

	rec, env := doJSON(t, api, http.MethodPost, "/register", "", map[string]string{
		"first_name": "Al",
		"last_name":  "Andersson",
		"email":      "inte-en-adress",
		"password":   "kort",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "fail", env.Status)

	var fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	got := make([]string, 0, len(fields))
	for _, f := range fields {
		got = append(got, f.Field)
	}
	assert.ElementsMatch(t, []string{"first_name", "email", "password"}, got)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	api := newTestAPI(t)
	registerAndLogin(t, api, "anna@example.com")

	rec, env := doJSON(t, api, http.MethodPost, "/register", "", map[string]string{
		"first_name": "Annika",
		"last_name":  "Annorlunda",
		"email":      "anna@example.com",
		"password":   "hemligt2",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "fail", env.Status)
	assert.Contains(t, string(env.Data), "email already exists")
}

func TestLogin_WrongPassword(t *testing.T) {
	api := newTestAPI(t)
	registerAndLogin(t, api, "anna@example.com")

	rec, env := doJSON(t, api, http.MethodPost, "/login", "", map[string]string{
		"email":    "anna@example.com",
		"password": "fel-lösenord",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, "Authorization required", env.Message)
}

func TestLogin_UnknownEmailSameResponse(t *testing.T) {
	api := newTestAPI(t)
	registerAndLogin(t, api, "anna@example.com")

	recWrong, _ := doJSON(t, api, http.MethodPost, "/login", "", map[string]string{
		"email":    "anna@example.com",
		"password": "fel-lösenord",
	})
	recUnknown, _ := doJSON(t, api, http.MethodPost, "/login", "", map[string]string{
		"email":    "ingen@example.com",
		"password": "hemligt1",
	})

	assert.Equal(t, recWrong.Code, recUnknown.Code)
	assert.Equal(t, recWrong.Body.String(), recUnknown.Body.String(),
		"unknown email and wrong password must be indistinguishable")
}

func TestRefresh(t *testing.T) {
	api := newTestAPI(t)
	access, refresh, _ := registerAndLogin(t, api, "anna@example.com")

	rec, env := doJSON(t, api, http.MethodPost, "/refresh", refresh, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.AccessToken)

	// The refreshed token works on a protected route.
	rec, _ = doJSON(t, api, http.MethodGet, "/profile", out.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// An access token in the refresh slot is rejected.
	rec, _ = doJSON(t, api, http.MethodPost, "/refresh", access, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// So is a missing header.
	rec, _ = doJSON(t, api, http.MethodPost, "/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/profile"},
		{http.MethodPatch, "/profile"},
		{http.MethodGet, "/albums"},
		{http.MethodPost, "/albums"},
		{http.MethodGet, "/albums/1"},
		{http.MethodPatch, "/albums/1"},
		{http.MethodDelete, "/albums/1"},
		{http.MethodPost, "/albums/1/photos"},
		{http.MethodDelete, "/albums/1/photos/1"},
		{http.MethodGet, "/photos"},
		{http.MethodPost, "/photos"},
		{http.MethodGet, "/photos/1"},
		{http.MethodPatch, "/photos/1"},
		{http.MethodDelete, "/photos/1"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec, env := doJSON(t, api, rt.method, rt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "fail", env.Status)
			assert.Equal(t, "Authorization required", env.Message)
		})
	}
}

func TestProfile(t *testing.T) {
	api := newTestAPI(t)
	access, _, userID := registerAndLogin(t, api, "anna@example.com")

	rec, env := doJSON(t, api, http.MethodGet, "/profile", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.EqualValues(t, userID, profile["id"])
	assert.Equal(t, "anna@example.com", profile["email"])
	assert.NotContains(t, profile, "password")

	rec, env = doJSON(t, api, http.MethodPatch, "/profile", access, map[string]string{
		"first_name": "Anna-Lena",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Anna-Lena", profile["first_name"])
	assert.Equal(t, "Andersson", profile["last_name"])
}

func TestProfileUpdate_InvalidEmail(t *testing.T) {
	api := newTestAPI(t)
	access, _, _ := registerAndLogin(t, api, "anna@example.com")

	rec, env := doJSON(t, api, http.MethodPatch, "/profile", access, map[string]string{
		"email": "inte-en-adress",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "fail", env.Status)
}

func TestRoot(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec, env := doJSON(t, api, http.MethodGet, "/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, "Not Found", env.Message)
}

func TestInvalidJSONBody(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON body")
}
