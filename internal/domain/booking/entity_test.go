package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

func TestCancelWindow(t *testing.T) {
	event := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		status   Status
		wantCode string
	}{
		{name: "well ahead", now: event.Add(-10 * 24 * time.Hour), status: StatusPending},
		{name: "exactly 48h", now: event.Add(-48 * time.Hour), status: StatusPending},
		{name: "47h59m", now: event.Add(-47*time.Hour - 59*time.Minute), status: StatusPending, wantCode: "too_late_to_cancel"},
		{name: "after event", now: event.Add(time.Hour), status: StatusConfirmed, wantCode: "too_late_to_cancel"},
		{name: "already cancelled", now: event.Add(-10 * 24 * time.Hour), status: StatusCancelled, wantCode: "already_cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &models.Booking{BookedForDate: "2025-06-10", Status: string(tt.status)}
			err := Cancel(b, tt.now)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				if b.Status != string(StatusCancelled) {
					t.Fatalf("status = %s, want cancelled", b.Status)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Fatalf("err = %v, want %s", err, tt.wantCode)
			}
			if b.Status != string(tt.status) {
				t.Fatalf("status changed to %s on rejection", b.Status)
			}
		})
	}
}

func TestNewSnapshotsCustomer(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	c := &models.Customer{ID: uuid.New(), Name: "Asha", Email: "asha@example.com", Phone: "+919876543210"}
	svcID := uuid.New()

	b := New(c, svcID, "2025-06-01", now)
	c.Name = "Changed"

	if b.CustomerName != "Asha" || b.CustomerEmail != "asha@example.com" || b.CustomerPhone != "+919876543210" {
		t.Fatalf("snapshot not taken: %+v", b)
	}
	if b.Status != string(StatusPending) || b.ServiceID != svcID || !b.DateBooked.Equal(now) {
		t.Fatalf("unexpected booking %+v", b)
	}
	if b.ID == uuid.Nil {
		t.Fatal("booking id not assigned")
	}
}
