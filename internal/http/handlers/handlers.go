package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-publications-backend/internal/domain"
	"github.com/tbourn/go-publications-backend/internal/http/middleware"
	"github.com/tbourn/go-publications-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// MediaService defines media registry operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MediaService interface {
	Create(ctx context.Context, title, username string) (*domain.Media, error)
	List(ctx context.Context) ([]domain.Media, error)
	FindOne(ctx context.Context, id int64) (*domain.Media, error)
	Update(ctx context.Context, id int64, patch domain.MediaPatch) (*domain.Media, error)
	Remove(ctx context.Context, id int64) (*domain.Media, error)
}

// PostService defines post registry operations consumed by HTTP handlers.
type PostService interface {
	Create(ctx context.Context, title, text string, image *string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	FindOne(ctx context.Context, id int64) (*domain.Post, error)
	Update(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error)
	Remove(ctx context.Context, id int64) (*domain.Post, error)
}

// PublicationService defines scheduler operations consumed by HTTP handlers.
type PublicationService interface {
	Create(ctx context.Context, mediaID, postID int64, date time.Time) (*domain.Publication, error)
	FindAll(ctx context.Context, published *bool, after *time.Time) ([]domain.Publication, error)
	FindOne(ctx context.Context, id int64) (*domain.Publication, error)
	Update(ctx context.Context, id int64, patch domain.PublicationPatch) (*domain.Publication, error)
	Remove(ctx context.Context, id int64) (*domain.Publication, error)
}

// IdempotencyStore remembers which resource a create request produced under
// an Idempotency-Key. It is optional; a nil store disables replays.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string) (resourceID int64, found bool, err error)
	Remember(ctx context.Context, scope, key string, resourceID int64, status int) error
}

// statsProvider is implemented by services that can summarize their table
// for weak ETags.
type statsProvider interface {
	Stats(ctx context.Context) (count int64, maxUpdatedAt *time.Time, err error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for medias, posts, and publications.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	mediaSvc MediaService
	postSvc  PostService
	pubSvc   PublicationService
	idem     IdempotencyStore
}

// New constructs and returns a Handlers instance bound to the given services.
// idem may be nil.
func New(mediaSvc MediaService, postSvc PostService, pubSvc PublicationService, idem IdempotencyStore) *Handlers {
	return &Handlers{mediaSvc: mediaSvc, postSvc: postSvc, pubSvc: pubSvc, idem: idem}
}

//
// Helpers
//

// pathID parses the :id path parameter, writing a 400 on failure.
func pathID(c *gin.Context) (int64, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// checkETag sets a weak ETag derived from svc's table stats and reports
// whether the request was answered with 304. Stats failures are ignored.
func checkETag(c *gin.Context, resource string, svc any) bool {
	sp, isStats := svc.(statsProvider)
	if !isStats {
		return false
	}
	count, maxTS, err := sp.Stats(c.Request.Context())
	if err != nil {
		return false
	}
	var ts int64
	if maxTS != nil {
		ts = maxTS.UnixMicro()
	}
	etag := fmt.Sprintf(`W/"%s:%d:%d"`, resource, count, ts)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		notModified(c)
		return true
	}
	return false
}

// idempotencyKey returns the validated key stashed by middleware, falling
// back to the raw header when the middleware is not mounted.
func idempotencyKey(c *gin.Context) string {
	if k, found := middleware.GetIdempotencyKey(c); found {
		return k
	}
	return strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
}

// replay serves a previously created resource for a repeated
// Idempotency-Key. load fetches the resource by id; it reports false when
// there is nothing to replay.
func replay[T any](c *gin.Context, h *Handlers, load func(context.Context, int64) (T, error)) bool {
	key := idempotencyKey(c)
	if key == "" || h.idem == nil {
		return false
	}
	ctx := c.Request.Context()
	id, found, err := h.idem.Lookup(ctx, middleware.Scope(c), key)
	if err != nil || !found {
		return false
	}
	prev, err := load(ctx, id)
	if err != nil {
		return false
	}
	c.Header("Idempotency-Replayed", "true")
	ok(c, http.StatusCreated, prev)
	return true
}

// remember records a created resource under the request's Idempotency-Key.
// It is best effort; failures are logged and otherwise ignored.
func (h *Handlers) remember(c *gin.Context, id int64) {
	key := idempotencyKey(c)
	if key == "" || h.idem == nil {
		return
	}
	if err := h.idem.Remember(c.Request.Context(), middleware.Scope(c), key, id, http.StatusCreated); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("idempotency_key", key).Msg("idempotency record not stored")
	}
}
