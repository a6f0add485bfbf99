// Publication HTTP handlers.
//
// This file exposes REST endpoints for publication resources:
//   - POST   /publications        (schedule, idempotent with Idempotency-Key)
//   - GET    /publications        (list, filtered by ?published and ?after)
//   - GET    /publications/{id}   (fetch)
//   - PATCH  /publications/{id}   (partial update; PUT is an alias)
//   - DELETE /publications/{id}   (delete)
//
// Dates are accepted as ISO-8601 strings and always rendered in UTC.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-publications-backend/internal/domain"
	"github.com/tbourn/go-publications-backend/internal/timeline"
	"github.com/tbourn/go-publications-backend/internal/utils"
)

//
// DTOs
//

// CreatePublicationRequest is the JSON payload for scheduling a post on a media.
type CreatePublicationRequest struct {
	MediaID int64 `json:"mediaId" binding:"required,gt=0" example:"1"`
	PostID  int64 `json:"postId" binding:"required,gt=0" example:"1"`
	// Date is an ISO-8601 timestamp; past dates are accepted.
	Date string `json:"date" binding:"required" example:"2025-06-01T12:00:00Z"`
}

// UpdatePublicationRequest is the JSON payload for a partial publication
// update. At least one field must be present.
type UpdatePublicationRequest struct {
	MediaID domain.Optional[int64]  `json:"mediaId" swaggertype:"integer" example:"2"`
	PostID  domain.Optional[int64]  `json:"postId" swaggertype:"integer" example:"3"`
	Date    domain.Optional[string] `json:"date" swaggertype:"string" example:"2030-01-01T09:00:00Z"`
}

// toPatch validates the present fields and converts them to a domain patch.
func (r UpdatePublicationRequest) toPatch() (domain.PublicationPatch, string) {
	var patch domain.PublicationPatch
	if v, set := r.MediaID.Get(); set {
		if v <= 0 {
			return patch, "mediaId must be a positive integer"
		}
		patch.MediaID = domain.Some(v)
	}
	if v, set := r.PostID.Get(); set {
		if v <= 0 {
			return patch, "postId must be a positive integer"
		}
		patch.PostID = domain.Some(v)
	}
	if v, set := r.Date.Get(); set {
		d, err := timeline.ParseDate(v)
		if err != nil {
			return patch, "date must be an ISO-8601 timestamp"
		}
		patch.Date = domain.Some(d)
	}
	return patch, ""
}

//
// Handlers
//

// CreatePublication godoc
// @ID          createPublication
// @Summary     Schedule a publication
// @Description Binds a post to a media at a date. Both references must exist; past dates are accepted.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Publications
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.CreatePublicationRequest  true  "Publication payload"
//
// @Success     201  {object}  domain.Publication
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Media or post not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /publications [post]
func (h *Handlers) CreatePublication(c *gin.Context) {
	var req CreatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "mediaId and postId must be positive integers; date is required")
		return
	}
	date, err := timeline.ParseDate(req.Date)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be an ISO-8601 timestamp")
		return
	}

	if replay(c, h, h.pubSvc.FindOne) {
		return
	}

	p, err := h.pubSvc.Create(c.Request.Context(), req.MediaID, req.PostID, date)
	if err != nil {
		failService(c, err, ErrCodeCreateFailed)
		return
	}
	h.remember(c, p.ID)
	ok(c, http.StatusCreated, p)
}

// ListPublications godoc
// @ID          listPublications
// @Summary     List publications
// @Description Filters by published state (date before now) and a lower date bound, evaluated at request time.
// @Description published=true with a future `after` always yields an empty list.
// @Tags        Publications
// @Produce     json
//
// @Param       published  query  bool    false "true: already published; false: scheduled"
// @Param       after      query  string  false "Only publications dated strictly after this ISO-8601 timestamp"  example(2025-01-01T00:00:00Z)
//
// @Success     200  {array}   domain.Publication
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /publications [get]
func (h *Handlers) ListPublications(c *gin.Context) {
	published, err := utils.ParseOptionalBool(c.Query("published"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "published must be true or false")
		return
	}

	var after *time.Time
	if raw := c.Query("after"); raw != "" {
		d, err := timeline.ParseDate(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "after must be an ISO-8601 timestamp")
			return
		}
		after = &d
	}

	items, err := h.pubSvc.FindAll(c.Request.Context(), published, after)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetPublication godoc
// @ID          getPublication
// @Summary     Fetch a publication
// @Tags        Publications
// @Produce     json
//
// @Param       id  path  int  true  "Publication ID"  minimum(1)
//
// @Success     200  {object}  domain.Publication
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Publication not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /publications/{id} [get]
func (h *Handlers) GetPublication(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	p, err := h.pubSvc.FindOne(c.Request.Context(), id)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdatePublication godoc
// @ID          updatePublication
// @Summary     Update a publication
// @Description Partially updates mediaId, postId and/or date. A new date in the past is forbidden.
// @Tags        Publications
// @Accept      json
// @Produce     json
//
// @Param       id    path  int  true  "Publication ID"  minimum(1)
// @Param       body  body  handlers.UpdatePublicationRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.Publication
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse "Date in the past"
// @Failure     404  {object}  handlers.ErrorResponse "Publication, media or post not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /publications/{id} [patch]
// @Router      /publications/{id} [put]
func (h *Handlers) UpdatePublication(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req UpdatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	patch, msg := req.toPatch()
	if msg != "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, msg)
		return
	}

	p, err := h.pubSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePublication godoc
// @ID          deletePublication
// @Summary     Delete a publication
// @Description Deletes a publication and returns the deleted record.
// @Tags        Publications
// @Produce     json
//
// @Param       id  path  int  true  "Publication ID"  minimum(1)
//
// @Success     200  {object}  domain.Publication
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Publication not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /publications/{id} [delete]
func (h *Handlers) DeletePublication(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	p, err := h.pubSvc.Remove(c.Request.Context(), id)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, p)
}
