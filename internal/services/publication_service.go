// Package services – PublicationService
//
// This file implements the publication scheduler. It validates mediaId and
// postId references through the media and post registries, guards updates
// against moving a publication into the past, and answers time-partitioned
// queries ("published" vs "scheduled", optionally after a date).
//
// Published state is never stored. Every query resolves a timeline.Window
// against the service clock at call time.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// carry publication, media and post identifiers where applicable.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-publications-backend/internal/domain"
	"github.com/tbourn/go-publications-backend/internal/observability"
	"github.com/tbourn/go-publications-backend/internal/repo"
	"github.com/tbourn/go-publications-backend/internal/timeline"

	// OpenTelemetry
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var pubTracer = observability.Tracer("services/publication")

// MediaLookup resolves a media id or fails with a not-found error.
type MediaLookup interface {
	FindOne(ctx context.Context, id int64) (*domain.Media, error)
}

// PostLookup resolves a post id or fails with a not-found error.
type PostLookup interface {
	FindOne(ctx context.Context, id int64) (*domain.Post, error)
}

// PublicationService schedules posts onto medias.
type PublicationService struct {
	DB     *gorm.DB
	Medias MediaLookup
	Posts  PostLookup

	// Now is the clock used for temporal rules; nil means time.Now.
	Now func() time.Time
}

// NewPublicationService wires the scheduler to its registries.
func NewPublicationService(db *gorm.DB, medias MediaLookup, posts PostLookup) *PublicationService {
	return &PublicationService{DB: db, Medias: medias, Posts: posts, Now: time.Now}
}

func (s *PublicationService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Create validates the references that are present and persists the
// publication. Past and future dates are both accepted.
func (s *PublicationService) Create(ctx context.Context, mediaID, postID int64, date time.Time) (*domain.Publication, error) {
	ctx, span := pubTracer.Start(ctx, "PublicationService.Create",
		trace.WithAttributes(
			attribute.Int64("media.id", mediaID),
			attribute.Int64("post.id", postID),
		),
	)
	defer span.End()

	if err := s.checkRefs(ctx, mediaID, postID); err != nil {
		return nil, err
	}

	p, err := repo.CreatePublication(ctx, s.DB, mediaID, postID, timeline.Normalize(date))
	if err != nil {
		if repo.IsForeignKey(err) {
			return nil, ErrReferenceNotFound
		}
		return nil, err
	}
	log.Ctx(ctx).Debug().
		Int64("publication_id", p.ID).
		Int64("media_id", mediaID).
		Int64("post_id", postID).
		Time("date", p.Date).
		Msg("publication created")
	return p, nil
}

// Update applies a partial update. Checks run in order: empty body, unknown
// id, references, then the past-date guard on the new date only.
func (s *PublicationService) Update(ctx context.Context, id int64, patch domain.PublicationPatch) (*domain.Publication, error) {
	ctx, span := pubTracer.Start(ctx, "PublicationService.Update",
		trace.WithAttributes(attribute.Int64("publication.id", id)),
	)
	defer span.End()

	if patch.Empty() {
		return nil, ErrEmptyUpdate
	}

	p, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkRefs(ctx, patch.MediaID.Value, patch.PostID.Value); err != nil {
		return nil, err
	}

	if d, ok := patch.Date.Get(); ok {
		d = timeline.Normalize(d)
		if timeline.IsPast(d, s.now()) {
			return nil, ErrPastDate
		}
		p.Date = d
	}
	if v, ok := patch.MediaID.Get(); ok {
		p.MediaID = v
	}
	if v, ok := patch.PostID.Get(); ok {
		p.PostID = v
	}

	if err := repo.SavePublication(ctx, s.DB, p); err != nil {
		if repo.IsForeignKey(err) {
			return nil, ErrReferenceNotFound
		}
		return nil, err
	}
	log.Ctx(ctx).Debug().Int64("publication_id", id).Msg("publication updated")
	return p, nil
}

// Remove deletes publication id and returns the deleted record.
func (s *PublicationService) Remove(ctx context.Context, id int64) (*domain.Publication, error) {
	ctx, span := pubTracer.Start(ctx, "PublicationService.Remove",
		trace.WithAttributes(attribute.Int64("publication.id", id)),
	)
	defer span.End()

	var deleted *domain.Publication
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := repo.GetPublication(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrPublicationNotFound
			}
			return err
		}
		if err := repo.DeletePublication(ctx, tx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrPublicationNotFound
			}
			return err
		}
		deleted = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// FindOne returns publication id or ErrPublicationNotFound.
func (s *PublicationService) FindOne(ctx context.Context, id int64) (*domain.Publication, error) {
	p, err := repo.GetPublication(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPublicationNotFound
		}
		return nil, err
	}
	return p, nil
}

// FindAll lists publications filtered by published state and a lower date
// bound, both optional. See timeline.Resolve for the decision table.
func (s *PublicationService) FindAll(ctx context.Context, published *bool, after *time.Time) ([]domain.Publication, error) {
	ctx, span := pubTracer.Start(ctx, "PublicationService.FindAll")
	defer span.End()

	if published != nil {
		span.SetAttributes(attribute.Bool("filter.published", *published))
	}
	if after != nil {
		n := timeline.Normalize(*after)
		after = &n
		span.SetAttributes(attribute.String("filter.after", n.Format(time.RFC3339Nano)))
	}

	w := timeline.Resolve(published, after, s.now())
	if w.Empty {
		log.Ctx(ctx).Debug().Msg("publication window empty; skipping query")
	}
	return repo.ListPublications(ctx, s.DB, w)
}

// Counts returns how many publications are scheduled (future) and how many
// are published (past) as of now.
func (s *PublicationService) Counts(ctx context.Context) (scheduled, published int64, err error) {
	now := s.now()
	if scheduled, err = repo.CountPublications(ctx, s.DB, timeline.Scheduled(now)); err != nil {
		return 0, 0, err
	}
	if published, err = repo.CountPublications(ctx, s.DB, timeline.Published(now)); err != nil {
		return 0, 0, err
	}
	return scheduled, published, nil
}

// checkRefs validates whichever of mediaID and postID is set (non-zero).
// Registry errors propagate verbatim.
func (s *PublicationService) checkRefs(ctx context.Context, mediaID, postID int64) error {
	if mediaID != 0 {
		if _, err := s.Medias.FindOne(ctx, mediaID); err != nil {
			return err
		}
	}
	if postID != 0 {
		if _, err := s.Posts.FindOne(ctx, postID); err != nil {
			return err
		}
	}
	return nil
}
