// Media HTTP handlers.
//
// This file exposes REST endpoints for media resources:
//   - POST   /medias        (create, idempotent with Idempotency-Key)
//   - GET    /medias        (list, ETag support)
//   - GET    /medias/{id}   (fetch)
//   - PATCH  /medias/{id}   (partial update)
//   - DELETE /medias/{id}   (delete, forbidden while publications exist)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-publications-backend/internal/domain"
)

//
// DTOs
//

// CreateMediaRequest is the JSON payload for registering a media account.
type CreateMediaRequest struct {
	// Title is the platform name.
	Title string `json:"title" binding:"required,min=1,max=255" example:"Instagram"`
	// Username is the handle on that platform.
	Username string `json:"username" binding:"required,min=1,max=255" example:"@acme"`
}

// UpdateMediaRequest is the JSON payload for a partial media update. At
// least one field must be present.
type UpdateMediaRequest struct {
	Title    domain.Optional[string] `json:"title" swaggertype:"string" example:"Instagram"`
	Username domain.Optional[string] `json:"username" swaggertype:"string" example:"@acme"`
}

//
// Handlers
//

// CreateMedia godoc
// @ID          createMedia
// @Summary     Register a media account
// @Description Creates a media. The (title, username) pair must be unique.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Medias
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.CreateMediaRequest  true  "Media payload"
//
// @Success     201  {object}  domain.Media
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Media already exists"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /medias [post]
func (h *Handlers) CreateMedia(c *gin.Context) {
	var req CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and username are required")
		return
	}

	if replay(c, h, h.mediaSvc.FindOne) {
		return
	}

	m, err := h.mediaSvc.Create(c.Request.Context(), req.Title, req.Username)
	if err != nil {
		failService(c, err, ErrCodeCreateFailed)
		return
	}
	h.remember(c, m.ID)
	ok(c, http.StatusCreated, m)
}

// ListMedias godoc
// @ID          listMedias
// @Summary     List media accounts
// @Description Returns all medias ordered by id. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Medias
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"medias:3:1717243200000000\")
//
// @Success     200  {array}   domain.Media
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /medias [get]
func (h *Handlers) ListMedias(c *gin.Context) {
	if checkETag(c, "medias", h.mediaSvc) {
		return
	}
	items, err := h.mediaSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetMedia godoc
// @ID          getMedia
// @Summary     Fetch a media account
// @Tags        Medias
// @Produce     json
//
// @Param       id  path  int  true  "Media ID"  minimum(1)
//
// @Success     200  {object}  domain.Media
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Media not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /medias/{id} [get]
func (h *Handlers) GetMedia(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	m, err := h.mediaSvc.FindOne(c.Request.Context(), id)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, m)
}

// UpdateMedia godoc
// @ID          updateMedia
// @Summary     Update a media account
// @Description Partially updates title and/or username. The resulting pair must not belong to another media.
// @Tags        Medias
// @Accept      json
// @Produce     json
//
// @Param       id    path  int  true  "Media ID"  minimum(1)
// @Param       body  body  handlers.UpdateMediaRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.Media
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Media not found"
// @Failure     409  {object}  handlers.ErrorResponse "Media already exists"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /medias/{id} [patch]
func (h *Handlers) UpdateMedia(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	m, err := h.mediaSvc.Update(c.Request.Context(), id, domain.MediaPatch{
		Title:    req.Title,
		Username: req.Username,
	})
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, m)
}

// DeleteMedia godoc
// @ID          deleteMedia
// @Summary     Delete a media account
// @Description Deletes a media that has no publications and returns the deleted record.
// @Tags        Medias
// @Produce     json
//
// @Param       id  path  int  true  "Media ID"  minimum(1)
//
// @Success     200  {object}  domain.Media
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse "Media has publications"
// @Failure     404  {object}  handlers.ErrorResponse "Media not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /medias/{id} [delete]
func (h *Handlers) DeleteMedia(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	m, err := h.mediaSvc.Remove(c.Request.Context(), id)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, m)
}
