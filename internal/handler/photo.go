package handler

import (
	"log/slog"
	"net/http"

	"github.com/photoapp/photoapp/internal/service"
	"github.com/photoapp/photoapp/internal/validate"
)

// PhotoHandler serves the photo CRUD endpoints, mirroring AlbumHandler.
type PhotoHandler struct {
	svc    *service.PhotoService
	logger *slog.Logger
}

func NewPhotoHandler(svc *service.PhotoService, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{svc: svc, logger: logger}
}

// HandleList returns the caller's photos.
//
// HTTP: GET /photos
func (h *PhotoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	photos, err := h.svc.List(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, photos)
}

// HandleGet returns a single photo.
//
// HTTP: GET /photos/{photoId}
func (h *PhotoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	photoID, ok := idParam(w, r, "photoId")
	if !ok {
		return
	}

	photo, err := h.svc.Get(r.Context(), identity.ID, photoID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, photo)
}

type createPhotoRequest struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Comment *string `json:"comment"`
}

// HandleCreate creates a new photo owned by the caller.
//
// HTTP: POST /photos
// BODY: {"title","url","comment"?}
func (h *PhotoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createPhotoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	v.MinLength("title", req.Title, 3)
	v.URL("url", req.URL)
	v.OptionalMinLength("comment", req.Comment, 3)
	if err := v.Err(); err != nil {
		writeError(w, err)
		return
	}

	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}

	photo, err := h.svc.Create(r.Context(), identity.ID, req.Title, req.URL, comment)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, photo)
}

type updatePhotoRequest struct {
	Title   string  `json:"title"`
	URL     *string `json:"url"`
	Comment *string `json:"comment"`
}

// HandleUpdate applies a partial update to a photo. Title is required; url
// and comment are changed only when provided.
//
// HTTP: PATCH /photos/{photoId}
func (h *PhotoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	photoID, ok := idParam(w, r, "photoId")
	if !ok {
		return
	}

	var req updatePhotoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	v.MinLength("title", req.Title, 3)
	v.OptionalURL("url", req.URL)
	v.OptionalMinLength("comment", req.Comment, 3)
	if err := v.Err(); err != nil {
		writeError(w, err)
		return
	}

	photo, err := h.svc.Update(r.Context(), identity.ID, photoID, service.PhotoUpdate{
		Title:   req.Title,
		URL:     req.URL,
		Comment: req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, photo)
}

// HandleDelete removes a photo and all of its album associations.
//
// HTTP: DELETE /photos/{photoId}
func (h *PhotoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	photoID, ok := idParam(w, r, "photoId")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), identity.ID, photoID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil)
}
