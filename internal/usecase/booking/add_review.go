package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventgenie/internal/audit"
	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

var ErrInvalidRating = httperr.Conflict("invalid_rating", "Rating must be between 1 and 5")

type AddReviewInput struct {
	CustomerID uuid.UUID
	ServiceID  uuid.UUID
	Rating     int
	Comment    string
}

type AddReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewAddReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddReview {
	return &AddReview{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *AddReview) Execute(
	ctx context.Context,
	in AddReviewInput,
) (*models.Review, error) {

	ctx, span := tracer.Start(ctx, "AddReview")
	defer span.End()

	if in.Rating < 1 || in.Rating > 5 {
		return nil, fail(span, ErrInvalidRating)
	}

	customer, err := uc.repo.GetCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, fail(span, notFound(err, domain.ErrCustomerNotFound))
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, fail(span, notFound(err, domain.ErrServiceNotFound))
	}

	booked, err := uc.repo.HasBookedService(ctx, customer.ID, svc.ID)
	if err != nil {
		return nil, fail(span, err)
	}
	if !booked {
		return nil, fail(span, domain.ErrNotBookedByCustomer)
	}

	for _, r := range svc.Reviews {
		if r.User == customer.Username {
			return nil, fail(span, domain.ErrAlreadyReviewed)
		}
	}

	review := &models.Review{
		ID:        uuid.New(),
		ServiceID: svc.ID,
		User:      customer.Username,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Date:      uc.now(),
	}

	if err := uc.repo.CreateReview(ctx, review); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, fail(span, domain.ErrAlreadyReviewed)
		}
		return nil, fail(span, err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   customer.ID.String(),
		ActorRole: "customer",
		Action:    "review_added",
		Entity:    "service",
		EntityID:  svc.ID.String(),
		Metadata:  map[string]any{"rating": in.Rating},
	})

	return review, nil
}
