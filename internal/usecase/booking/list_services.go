package booking

import (
	"context"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/dto"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

type ListServicesInput struct {
	Category       string
	FoodType       string
	MinPrice       *float64
	MaxPrice       *float64
	MinRating      *float64
	MaxRating      *float64
	Search         string
	VendorUsername string
	Date           string
}

// ListServices is the catalog query. Results are sorted by average rating,
// best first.
type ListServices struct {
	repo domain.Repository
}

func NewListServices(repo domain.Repository) *ListServices {
	return &ListServices{repo: repo}
}

func (uc *ListServices) Execute(
	ctx context.Context,
	in ListServicesInput,
) ([]dto.ServiceView, error) {

	ctx, span := tracer.Start(ctx, "ListServices")
	defer span.End()

	if in.Date != "" && !domain.ValidDate(in.Date) {
		return nil, fail(span, domain.InvalidDate(in.Date))
	}

	f := domain.ServiceFilter{
		MinPrice:       in.MinPrice,
		MaxPrice:       in.MaxPrice,
		Search:         in.Search,
		VendorUsername: in.VendorUsername,
	}
	if in.Category != "" && !strings.EqualFold(in.Category, "all") {
		f.Category = in.Category
	}
	// food type only narrows catering
	if f.Category == models.CategoryCatering && in.FoodType != "" && !strings.EqualFold(in.FoodType, "all") {
		f.FoodType = in.FoodType
	}

	services, err := uc.repo.ListServices(ctx, f)
	if err != nil {
		return nil, fail(span, err)
	}

	views := make([]dto.ServiceView, 0, len(services))
	for i := range services {
		svc := &services[i]
		if !ratingMatches(svc, in.MinRating, in.MaxRating) {
			continue
		}
		views = append(views, View(svc, in.Date))
	}

	slices.SortStableFunc(views, func(a, b dto.ServiceView) int {
		switch {
		case a.AverageRating > b.AverageRating:
			return -1
		case a.AverageRating < b.AverageRating:
			return 1
		}
		return 0
	})

	span.SetAttributes(attribute.Int("services.count", len(views)))
	return views, nil
}

// View annotates one service for the given date. An empty date leaves the
// service available with status "Date not selected".
func View(svc *models.Service, date string) dto.ServiceView {
	v := dto.ServiceView{
		Service:            *svc,
		AverageRating:      svc.AverageRating(),
		ReviewCount:        len(svc.Reviews),
		IsAvailable:        domain.IsAvailable(svc, date),
		AvailabilityStatus: string(domain.StatusOn(svc, date)),
	}
	if date != "" {
		d := date
		v.SelectedDate = &d
	}
	v.Bookings = nil
	if v.BlockedDates == nil {
		v.BlockedDates = []string{}
	}
	return v
}

// ratingMatches: unreviewed services pass only when no minimum above zero is
// requested.
func ratingMatches(svc *models.Service, minRating, maxRating *float64) bool {
	if minRating == nil && maxRating == nil {
		return true
	}
	if len(svc.Reviews) == 0 {
		return minRating == nil || *minRating == 0
	}

	avg := svc.AverageRating()
	if minRating != nil && avg < *minRating {
		return false
	}
	if maxRating != nil && avg > *maxRating {
		return false
	}
	return true
}
