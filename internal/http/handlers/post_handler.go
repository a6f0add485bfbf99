// Post HTTP handlers.
//
// This file exposes REST endpoints for post resources:
//   - POST   /posts        (create, idempotent with Idempotency-Key)
//   - GET    /posts        (list, ETag support)
//   - GET    /posts/{id}   (fetch)
//   - PATCH  /posts/{id}   (partial update)
//   - DELETE /posts/{id}   (delete, forbidden while publications exist)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tbourn/go-publications-backend/internal/domain"
)

//
// DTOs
//

// CreatePostRequest is the JSON payload for creating a post.
type CreatePostRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255" example:"Summer launch"`
	Text  string `json:"text" binding:"required,min=1" example:"Our new collection is live."`
	// Image is an optional absolute URL.
	Image *string `json:"image" binding:"omitempty,url" example:"https://cdn.example.com/launch.png"`
}

// UpdatePostRequest is the JSON payload for a partial post update. Title or
// text must be present; an empty image clears it.
type UpdatePostRequest struct {
	Title domain.Optional[string] `json:"title" swaggertype:"string" example:"Summer launch"`
	Text  domain.Optional[string] `json:"text" swaggertype:"string" example:"Now with free shipping."`
	Image domain.Optional[string] `json:"image" swaggertype:"string" example:"https://cdn.example.com/launch.png"`
}

// imageCheck reuses the create-time URL rule for optional update fields.
type imageCheck struct {
	Image string `binding:"omitempty,url"`
}

//
// Handlers
//

// CreatePost godoc
// @ID          createPost
// @Summary     Create a post
// @Description Creates reusable content that can later be scheduled on medias.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Posts
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.CreatePostRequest  true  "Post payload"
//
// @Success     201  {object}  domain.Post
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /posts [post]
func (h *Handlers) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and text are required; image must be a URL")
		return
	}

	if replay(c, h, h.postSvc.FindOne) {
		return
	}

	p, err := h.postSvc.Create(c.Request.Context(), req.Title, req.Text, req.Image)
	if err != nil {
		failService(c, err, ErrCodeCreateFailed)
		return
	}
	h.remember(c, p.ID)
	ok(c, http.StatusCreated, p)
}

// ListPosts godoc
// @ID          listPosts
// @Summary     List posts
// @Description Returns all posts ordered by id. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Posts
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}   domain.Post
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /posts [get]
func (h *Handlers) ListPosts(c *gin.Context) {
	if checkETag(c, "posts", h.postSvc) {
		return
	}
	items, err := h.postSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetPost godoc
// @ID          getPost
// @Summary     Fetch a post
// @Tags        Posts
// @Produce     json
//
// @Param       id  path  int  true  "Post ID"  minimum(1)
//
// @Success     200  {object}  domain.Post
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Post not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /posts/{id} [get]
func (h *Handlers) GetPost(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	p, err := h.postSvc.FindOne(c.Request.Context(), id)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdatePost godoc
// @ID          updatePost
// @Summary     Update a post
// @Description Partially updates a post. Title or text is required.
// @Tags        Posts
// @Accept      json
// @Produce     json
//
// @Param       id    path  int  true  "Post ID"  minimum(1)
// @Param       body  body  handlers.UpdatePostRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.Post
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Post not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /posts/{id} [patch]
func (h *Handlers) UpdatePost(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if img, set := req.Image.Get(); set {
		if err := binding.Validator.ValidateStruct(&imageCheck{Image: img}); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "image must be a URL")
			return
		}
	}

	p, err := h.postSvc.Update(c.Request.Context(), id, domain.PostPatch{
		Title: req.Title,
		Text:  req.Text,
		Image: req.Image,
	})
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePost godoc
// @ID          deletePost
// @Summary     Delete a post
// @Description Deletes a post that has no publications and returns the deleted record.
// @Tags        Posts
// @Produce     json
//
// @Param       id  path  int  true  "Post ID"  minimum(1)
//
// @Success     200  {object}  domain.Post
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse "Post has publications"
// @Failure     404  {object}  handlers.ErrorResponse "Post not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /posts/{id} [delete]
func (h *Handlers) DeletePost(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	p, err := h.postSvc.Remove(c.Request.Context(), id)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, p)
}
