package booking

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/eventgenie/internal/audit"
	"github.com/BruksfildServices01/eventgenie/internal/auth"
	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
)

type BlockMode int

const (
	Block BlockMode = iota
	Unblock
)

func (m BlockMode) action() string {
	if m == Unblock {
		return "dates_unblocked"
	}
	return "dates_blocked"
}

func (m BlockMode) apply(dates []string) func([]string) []string {
	if m == Unblock {
		return func(current []string) []string { return domain.RemoveDates(current, dates) }
	}
	return func(current []string) []string { return domain.MergeDates(current, dates) }
}

// BlockOutcome is one service's result in a bulk block or unblock.
type BlockOutcome struct {
	ID           string   `json:"id"`
	Success      bool     `json:"success"`
	BlockedDates []string `json:"blockedDates,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// BlockDates marks dates unavailable on a service, or releases them. It never
// touches bookings.
type BlockDates struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBlockDates(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *BlockDates {
	return &BlockDates{
		repo:  repo,
		audit: audit,
	}
}

func (uc *BlockDates) Execute(
	ctx context.Context,
	actor auth.Principal,
	serviceID uuid.UUID,
	dates []string,
	mode BlockMode,
) ([]string, error) {

	ctx, span := tracer.Start(ctx, "BlockDates")
	defer span.End()
	span.SetAttributes(
		attribute.String("service.id", serviceID.String()),
		attribute.StringSlice("dates", dates),
	)

	if len(dates) == 0 {
		return nil, fail(span, httperr.Conflict("invalid_request", "dates must be a non-empty array"))
	}
	if err := domain.ValidateDates(dates); err != nil {
		return nil, fail(span, err)
	}

	blocked, err := uc.update(ctx, actor, serviceID, dates, mode)
	if err != nil {
		return nil, fail(span, err)
	}
	return blocked, nil
}

// ExecuteBulk applies the same dates to every service independently.
func (uc *BlockDates) ExecuteBulk(
	ctx context.Context,
	actor auth.Principal,
	serviceIDs []string,
	dates []string,
	mode BlockMode,
) ([]BlockOutcome, error) {

	ctx, span := tracer.Start(ctx, "BlockDatesBulk")
	defer span.End()

	if len(serviceIDs) == 0 || len(dates) == 0 {
		return nil, fail(span, domain.ErrEmptyBlockInput)
	}
	if err := domain.ValidateDates(dates); err != nil {
		return nil, fail(span, err)
	}

	out := make([]BlockOutcome, 0, len(serviceIDs))
	for _, raw := range serviceIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			out = append(out, BlockOutcome{ID: raw, Error: domain.ErrServiceNotFound.Error()})
			continue
		}

		blocked, err := uc.update(ctx, actor, id, dates, mode)
		if err != nil {
			out = append(out, BlockOutcome{ID: raw, Error: err.Error()})
			continue
		}
		out = append(out, BlockOutcome{ID: raw, Success: true, BlockedDates: blocked})
	}

	return out, nil
}

func (uc *BlockDates) update(
	ctx context.Context,
	actor auth.Principal,
	serviceID uuid.UUID,
	dates []string,
	mode BlockMode,
) ([]string, error) {

	svc, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	if !actor.IsAdmin() && svc.VendorUsername != actor.Username {
		return nil, domain.ErrNotServiceOwner
	}

	updated, err := uc.repo.UpdateBlockedDates(ctx, serviceID, mode.apply(dates))
	if err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   actor.ID.String(),
		ActorRole: actor.Role,
		Action:    mode.action(),
		Entity:    "service",
		EntityID:  serviceID.String(),
		Metadata:  map[string]any{"dates": dates},
	})

	blocked := updated.BlockedDates
	if blocked == nil {
		blocked = []string{}
	}
	return blocked, nil
}
