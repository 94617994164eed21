package handler

import "net/http"

// HandleRoot answers the only public, unvalidated route with a hint about
// what this API is.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "photo album API - register, log in, and bring a bearer token",
	})
}

// HandleNotFound is the JSON catch-all for unknown routes. Without it chi
// falls back to net/http's plain-text 404, which would be the one
// non-JSON response in the API.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeFail(w, http.StatusNotFound, "Not Found")
}
