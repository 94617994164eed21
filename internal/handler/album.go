package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/photoapp/photoapp/internal/service"
	"github.com/photoapp/photoapp/internal/validate"
)

// AlbumHandler serves the album CRUD endpoints and the album↔photo
// link/unlink operations. All routes are behind the auth guard; every
// single-item operation additionally goes through the service's ownership
// check.
type AlbumHandler struct {
	svc    *service.AlbumService
	logger *slog.Logger
}

func NewAlbumHandler(svc *service.AlbumService, logger *slog.Logger) *AlbumHandler {
	return &AlbumHandler{svc: svc, logger: logger}
}

// HandleList returns the caller's albums, photos not included.
//
// HTTP: GET /albums
func (h *AlbumHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	albums, err := h.svc.List(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, albums)
}

// HandleGet returns a single album with its full photo collection.
//
// HTTP: GET /albums/{albumId}
func (h *AlbumHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	albumID, ok := idParam(w, r, "albumId")
	if !ok {
		return
	}

	album, err := h.svc.Get(r.Context(), identity.ID, albumID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, album)
}

type albumRequest struct {
	Title string `json:"title"`
}

// HandleCreate creates a new album owned by the caller.
//
// HTTP: POST /albums
// BODY: {"title"}
func (h *AlbumHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req albumRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	v.MinLength("title", req.Title, 3)
	if err := v.Err(); err != nil {
		writeError(w, err)
		return
	}

	album, err := h.svc.Create(r.Context(), identity.ID, req.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, album)
}

// HandleUpdate renames an album.
//
// HTTP: PATCH /albums/{albumId}
// BODY: {"title"}
func (h *AlbumHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	albumID, ok := idParam(w, r, "albumId")
	if !ok {
		return
	}

	var req albumRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	v.MinLength("title", req.Title, 3)
	if err := v.Err(); err != nil {
		writeError(w, err)
		return
	}

	album, err := h.svc.Update(r.Context(), identity.ID, albumID, req.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, album)
}

// HandleDelete removes an album and all of its photo associations.
//
// HTTP: DELETE /albums/{albumId}
func (h *AlbumHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	albumID, ok := idParam(w, r, "albumId")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), identity.ID, albumID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil)
}

// photoRef is how link requests name photos: objects carrying an id, the
// same shape photo records have elsewhere in the API.
type photoRef struct {
	ID int64 `json:"id"`
}

// HandleAddPhotos links one or more photos to an album.
//
// HTTP: POST /albums/{albumId}/photos
// BODY: [{"id":1},{"id":2}] - or a single {"id":1}
//
// The body is decoded leniently: a single object is treated as a one-element
// list so clients don't have to wrap one photo in an array.
func (h *AlbumHandler) HandleAddPhotos(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	albumID, ok := idParam(w, r, "albumId")
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var refs []photoRef
	if err := json.Unmarshal(body, &refs); err != nil {
		var single photoRef
		if err := json.Unmarshal(body, &single); err != nil {
			writeFail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		refs = []photoRef{single}
	}

	photoIDs := make([]int64, 0, len(refs))
	v := validate.New()
	for _, ref := range refs {
		if ref.ID <= 0 {
			v.Add("id", "id has to be a positive integer")
			continue
		}
		photoIDs = append(photoIDs, ref.ID)
	}
	if len(refs) == 0 {
		v.Add("id", "at least one photo id is required")
	}
	if err := v.Err(); err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.AddPhotos(r.Context(), identity.ID, albumID, photoIDs); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil)
}

// HandleRemovePhoto unlinks a photo from an album.
//
// HTTP: DELETE /albums/{albumId}/photos/{photoId}
func (h *AlbumHandler) HandleRemovePhoto(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	albumID, ok := idParam(w, r, "albumId")
	if !ok {
		return
	}
	photoID, ok := idParam(w, r, "photoId")
	if !ok {
		return
	}

	if err := h.svc.RemovePhoto(r.Context(), identity.ID, albumID, photoID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil)
}
