package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventgenie/internal/audit"
	"github.com/BruksfildServices01/eventgenie/internal/auth"
	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/infra/lock"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

type fixture struct {
	repo   *memRepo
	book   *BookService
	bulk   *BulkBookServices
	cancel *CancelBooking
	block  *BlockDates
	review *AddReview
}

// fixedNow is well over 48h before every date the tests book.
var fixedNow = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newMemRepo()
	d := audit.NewDispatcher()
	t.Cleanup(d.Close)

	clock := func() time.Time { return fixedNow }

	book := NewBookService(repo, lock.NewLocalLocker(), d)
	book.now = clock
	cancel := NewCancelBooking(repo, d)
	cancel.now = clock
	review := NewAddReview(repo, d)
	review.now = clock

	return &fixture{
		repo:   repo,
		book:   book,
		bulk:   NewBulkBookServices(book),
		cancel: cancel,
		block:  NewBlockDates(repo, d),
		review: review,
	}
}

func customerPrincipal(c models.Customer) auth.Principal {
	return auth.Principal{ID: c.ID, Username: c.Username, Role: auth.RoleCustomer}
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("err = %v, want business error %q", err, code)
	}
}

// ======================================================
// Single booking
// ======================================================

func TestBookCancelRebookScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s1 := f.repo.addService("S1", "vendor1", 1000)
	c1 := f.repo.addCustomer("C1")
	c2 := f.repo.addCustomer("C2")

	first, _, err := f.book.Execute(ctx, BookServiceInput{CustomerID: c1.ID, ServiceID: s1.ID, Date: "2025-06-01"})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if first.Status != "pending" {
		t.Fatalf("status = %s, want pending", first.Status)
	}
	if got := f.repo.activeBookings(s1.ID, "2025-06-01"); got != 1 {
		t.Fatalf("active bookings = %d, want 1", got)
	}

	_, _, err = f.book.Execute(ctx, BookServiceInput{CustomerID: c2.ID, ServiceID: s1.ID, Date: "2025-06-01"})
	wantCode(t, err, "date_already_booked")
	if be, _ := httperr.AsBusiness(err); be.HTTPStatus() != 400 || be.Message != "This date is already booked for this service" {
		t.Fatalf("unexpected rejection %+v", be)
	}

	cancelled, err := f.cancel.Execute(ctx, customerPrincipal(c1), s1.ID, first.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != "cancelled" {
		t.Fatalf("status after cancel = %s", cancelled.Status)
	}

	svc, _ := f.repo.GetService(ctx, s1.ID)
	if !domain.IsAvailable(svc, "2025-06-01") {
		t.Fatal("date not freed by cancellation")
	}

	if _, _, err := f.book.Execute(ctx, BookServiceInput{CustomerID: c2.ID, ServiceID: s1.ID, Date: "2025-06-01"}); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}

	linked, _ := f.repo.HasBookedService(ctx, c2.ID, s1.ID)
	if !linked {
		t.Fatal("service not linked to the customer")
	}
}

func TestBookServiceRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	svc := f.repo.addService("Hall", "vendor1", 500)
	c := f.repo.addCustomer("Ravi")
	blocked := f.repo.services[svc.ID]
	blocked.BlockedDates = []string{"2025-07-04"}
	f.repo.services[svc.ID] = blocked

	tests := []struct {
		name string
		in   BookServiceInput
		code string
	}{
		{name: "bad date", in: BookServiceInput{CustomerID: c.ID, ServiceID: svc.ID, Date: "07/04/2025"}, code: "invalid_date"},
		{name: "unknown customer", in: BookServiceInput{CustomerID: uuid.New(), ServiceID: svc.ID, Date: "2025-07-05"}, code: "customer_not_found"},
		{name: "unknown service", in: BookServiceInput{CustomerID: c.ID, ServiceID: uuid.New(), Date: "2025-07-05"}, code: "service_not_found"},
		{name: "blocked date", in: BookServiceInput{CustomerID: c.ID, ServiceID: svc.ID, Date: "2025-07-04"}, code: "date_blocked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.book.Execute(ctx, tt.in)
			wantCode(t, err, tt.code)
		})
	}
}

func TestBookServiceLostRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	svc := f.repo.addService("Hall", "vendor1", 500)
	c1 := f.repo.addCustomer("First")
	c2 := f.repo.addCustomer("Second")

	// another request commits between the read check and our commit
	f.repo.beforeCommit = func(b *models.Booking) {
		rival := *b
		rival.ID = uuid.New()
		rival.CustomerID = c2.ID
		f.repo.bookings = append(f.repo.bookings, rival)
	}

	_, _, err := f.book.Execute(ctx, BookServiceInput{CustomerID: c1.ID, ServiceID: svc.ID, Date: "2025-06-01"})
	wantCode(t, err, "no_longer_available")

	if got := f.repo.activeBookings(svc.ID, "2025-06-01"); got != 1 {
		t.Fatalf("active bookings = %d, want 1", got)
	}
}

func TestBookServiceConcurrentSameDate(t *testing.T) {
	f := newFixture(t)
	svc := f.repo.addService("Hall", "vendor1", 500)

	const callers = 16
	customers := make([]models.Customer, callers)
	for i := range customers {
		customers[i] = f.repo.addCustomer("cust" + string(rune('a'+i)))
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for _, c := range customers {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, _, err := f.book.Execute(context.Background(), BookServiceInput{CustomerID: id, ServiceID: svc.ID, Date: "2025-06-01"})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(c.ID)
	}
	wg.Wait()

	if ok != 1 {
		t.Fatalf("successful bookings = %d, want 1", ok)
	}
	if got := f.repo.activeBookings(svc.ID, "2025-06-01"); got != 1 {
		t.Fatalf("active bookings = %d, want 1", got)
	}
}

// ======================================================
// Bulk booking
// ======================================================

func TestBulkBookPartialSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.repo.addCustomer("Bulk")
	other := f.repo.addCustomer("Other")
	free1 := f.repo.addService("Free 1", "v", 100)
	free2 := f.repo.addService("Free 2", "v", 200)
	taken := f.repo.addService("Taken", "v", 300)
	blocked := f.repo.addService("Blocked", "v", 400)

	if _, _, err := f.book.Execute(ctx, BookServiceInput{CustomerID: other.ID, ServiceID: taken.ID, Date: "2025-06-01"}); err != nil {
		t.Fatal(err)
	}
	b := f.repo.services[blocked.ID]
	b.BlockedDates = []string{"2025-06-01"}
	f.repo.services[blocked.ID] = b

	items := []BulkItem{
		{ServiceID: free1.ID, RawID: free1.ID.String(), Date: "2025-06-01"},
		{ServiceID: taken.ID, RawID: taken.ID.String(), Date: "2025-06-01"},
		{ServiceID: free2.ID, RawID: free2.ID.String(), Date: "2025-06-01"},
		{ServiceID: blocked.ID, RawID: blocked.ID.String(), Date: "2025-06-01"},
		{ServiceID: uuid.Nil, RawID: "not-a-uuid", Date: "2025-06-01"},
	}

	res, err := f.bulk.Execute(ctx, c.ID, items)
	if err != nil {
		t.Fatal(err)
	}

	if res.TotalRequested != 5 || res.SuccessfullyBooked != 2 || res.FailedBookings != 3 {
		t.Fatalf("counts = %d/%d/%d, want 5/2/3", res.TotalRequested, res.SuccessfullyBooked, res.FailedBookings)
	}
	if len(res.Results) != 2 || len(res.Errors) != 3 || len(res.ValidationResults) != 5 {
		t.Fatalf("lists = %d results, %d errors, %d validation", len(res.Results), len(res.Errors), len(res.ValidationResults))
	}
	if res.Message != "Successfully booked 2 out of 5 services" {
		t.Fatalf("message = %q", res.Message)
	}
	for _, e := range res.Errors {
		if e.Phase != PhaseValidation {
			t.Fatalf("unexpected phase %q for %+v", e.Phase, e)
		}
	}
	if f.repo.activeBookings(free1.ID, "2025-06-01") != 1 || f.repo.activeBookings(free2.ID, "2025-06-01") != 1 {
		t.Fatal("validated items were not committed")
	}
}

func TestBulkBookLateFailureKeepsEarlierSuccess(t *testing.T) {
	f := newFixture(t)
	c := f.repo.addCustomer("Bulk")
	svc := f.repo.addService("Hall", "v", 100)

	// both pass validation, the second loses at commit time
	items := []BulkItem{
		{ServiceID: svc.ID, RawID: svc.ID.String(), Date: "2025-06-01"},
		{ServiceID: svc.ID, RawID: svc.ID.String(), Date: "2025-06-01"},
	}

	res, err := f.bulk.Execute(context.Background(), c.ID, items)
	if err != nil {
		t.Fatal(err)
	}
	if res.SuccessfullyBooked != 1 || res.FailedBookings != 1 {
		t.Fatalf("booked %d failed %d, want 1 and 1", res.SuccessfullyBooked, res.FailedBookings)
	}
	if len(res.Errors) != 1 || res.Errors[0].Phase != PhaseCommit {
		t.Fatalf("errors = %+v, want one commit-phase failure", res.Errors)
	}
	if res.Errors[0].Error != "Service is no longer available for this date" {
		t.Fatalf("late failure message = %q", res.Errors[0].Error)
	}
}

func TestBulkBookSharesOneTimestamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// a clock that moves on every read
	var mu sync.Mutex
	tick := fixedNow
	f.book.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Millisecond)
		return tick
	}

	c := f.repo.addCustomer("Bulk")
	hall := f.repo.addService("Hall", "v", 100)
	band := f.repo.addService("Band", "v", 200)
	decor := f.repo.addService("Decor", "v", 300)

	res, err := f.bulk.Execute(ctx, c.ID, []BulkItem{
		{ServiceID: hall.ID, RawID: hall.ID.String(), Date: "2025-06-01"},
		{ServiceID: band.ID, RawID: band.ID.String(), Date: "2025-06-01"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.SuccessfullyBooked != 2 {
		t.Fatalf("booked %d, want 2", res.SuccessfullyBooked)
	}

	bookings, _ := f.repo.ListCustomerBookings(ctx, c.ID)
	sessions := GroupSessions(bookings, c.Username)
	if len(sessions) != 1 || len(sessions[0].Bookings) != 2 {
		t.Fatalf("bulk split into %d sessions, want 1 session of 2", len(sessions))
	}

	if _, _, err := f.book.Execute(ctx, BookServiceInput{CustomerID: c.ID, ServiceID: decor.ID, Date: "2025-06-01"}); err != nil {
		t.Fatal(err)
	}
	bookings, _ = f.repo.ListCustomerBookings(ctx, c.ID)
	if got := len(GroupSessions(bookings, c.Username)); got != 2 {
		t.Fatalf("sessions after a single booking = %d, want 2", got)
	}
}

type busyLocker struct{}

func (busyLocker) Lock(context.Context, string) (func(), error) {
	return nil, lock.ErrLockTimeout
}

func TestBookServiceLockBusy(t *testing.T) {
	f := newFixture(t)
	f.book.locker = busyLocker{}

	svc := f.repo.addService("Hall", "v", 100)
	c := f.repo.addCustomer("Waiting")

	_, _, err := f.book.Execute(context.Background(), BookServiceInput{CustomerID: c.ID, ServiceID: svc.ID, Date: "2025-06-01"})
	wantCode(t, err, "booking_busy")
	if be, _ := httperr.AsBusiness(err); be.HTTPStatus() != 503 {
		t.Fatalf("status = %d, want 503", be.HTTPStatus())
	}
	if got := f.repo.activeBookings(svc.ID, "2025-06-01"); got != 0 {
		t.Fatalf("active bookings = %d, want 0", got)
	}
}

func TestBulkBookRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.repo.addCustomer("Bulk")

	_, err := f.bulk.Execute(ctx, c.ID, nil)
	wantCode(t, err, "empty_services")

	_, err = f.bulk.Execute(ctx, uuid.New(), []BulkItem{{Date: "2025-06-01"}})
	wantCode(t, err, "customer_not_found")

	_, err = f.bulk.Execute(ctx, c.ID, []BulkItem{
		{ServiceID: uuid.New(), RawID: "x", Date: "2025-06-01"},
		{ServiceID: uuid.Nil, RawID: "", Date: "bad"},
	})
	wantCode(t, err, "nothing_available")
	be, _ := httperr.AsBusiness(err)
	vr, ok := be.Fields["validationResults"].([]ValidationResult)
	if !ok || len(vr) != 2 {
		t.Fatalf("validationResults missing from error: %+v", be.Fields)
	}
}

// ======================================================
// Cancellation
// ======================================================

func TestCancelBookingRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	svc := f.repo.addService("Hall", "v", 100)
	owner := f.repo.addCustomer("Owner")
	stranger := f.repo.addCustomer("Stranger")

	soon, _, err := f.book.Execute(ctx, BookServiceInput{CustomerID: owner.ID, ServiceID: svc.ID, Date: "2025-05-02"})
	if err != nil {
		t.Fatal(err)
	}
	later, _, err := f.book.Execute(ctx, BookServiceInput{CustomerID: owner.ID, ServiceID: svc.ID, Date: "2025-08-01"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.cancel.Execute(ctx, customerPrincipal(stranger), svc.ID, later.ID)
	wantCode(t, err, "not_booking_owner")

	_, err = f.cancel.Execute(ctx, customerPrincipal(owner), svc.ID, soon.ID)
	wantCode(t, err, "too_late_to_cancel")

	_, err = f.cancel.Execute(ctx, customerPrincipal(owner), uuid.New(), later.ID)
	wantCode(t, err, "service_not_found")

	_, err = f.cancel.Execute(ctx, customerPrincipal(owner), svc.ID, uuid.New())
	wantCode(t, err, "booking_not_found")

	admin := auth.Principal{ID: uuid.New(), Role: auth.RoleAdmin}
	if _, err := f.cancel.Execute(ctx, admin, svc.ID, later.ID); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}

	_, err = f.cancel.Execute(ctx, customerPrincipal(owner), svc.ID, later.ID)
	wantCode(t, err, "already_cancelled")
}

func TestCancelBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	svc := f.repo.addService("Hall", "v", 100)
	c := f.repo.addCustomer("Owner")
	b, _, err := f.book.Execute(ctx, BookServiceInput{CustomerID: c.ID, ServiceID: svc.ID, Date: "2025-06-10"})
	if err != nil {
		t.Fatal(err)
	}
	event := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	f.cancel.now = func() time.Time { return event.Add(-47*time.Hour - 59*time.Minute) }
	_, err = f.cancel.Execute(ctx, customerPrincipal(c), svc.ID, b.ID)
	wantCode(t, err, "too_late_to_cancel")

	f.cancel.now = func() time.Time { return event.Add(-48 * time.Hour) }
	if _, err := f.cancel.Execute(ctx, customerPrincipal(c), svc.ID, b.ID); err != nil {
		t.Fatalf("cancel at exactly 48h: %v", err)
	}
}

// ======================================================
// Blocked dates
// ======================================================

func TestBlockDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	svc := f.repo.addService("Hall", "royal", 100)
	owner := auth.Principal{ID: uuid.New(), Username: "royal", Role: auth.RoleVendor, Status: "accepted"}
	intruder := auth.Principal{ID: uuid.New(), Username: "other", Role: auth.RoleVendor, Status: "accepted"}
	c := f.repo.addCustomer("Guest")

	existing, _, err := f.book.Execute(ctx, BookServiceInput{CustomerID: c.ID, ServiceID: svc.ID, Date: "2025-06-02"})
	if err != nil {
		t.Fatal(err)
	}

	blocked, err := f.block.Execute(ctx, owner, svc.ID, []string{"2025-06-01", "2025-06-02", "2025-06-01"}, Block)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocked) != 2 {
		t.Fatalf("blocked = %v, want two distinct dates", blocked)
	}

	// blocking leaves the existing booking alone
	still, _ := f.repo.GetBooking(ctx, svc.ID, existing.ID)
	if still.Status != "pending" {
		t.Fatalf("existing booking status = %s", still.Status)
	}

	_, _, err = f.book.Execute(ctx, BookServiceInput{CustomerID: c.ID, ServiceID: svc.ID, Date: "2025-06-01"})
	wantCode(t, err, "date_blocked")

	_, err = f.block.Execute(ctx, intruder, svc.ID, []string{"2025-06-03"}, Block)
	wantCode(t, err, "not_owner")

	_, err = f.block.Execute(ctx, owner, svc.ID, []string{"June 3"}, Block)
	wantCode(t, err, "invalid_date")

	after, err := f.block.Execute(ctx, owner, svc.ID, []string{"2025-06-01", "2025-06-02"}, Unblock)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 0 {
		t.Fatalf("after unblock = %v, want empty", after)
	}
}

func TestBlockDatesBulk(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine := f.repo.addService("Mine", "royal", 100)
	theirs := f.repo.addService("Theirs", "other", 100)
	vendor := auth.Principal{ID: uuid.New(), Username: "royal", Role: auth.RoleVendor}
	admin := auth.Principal{ID: uuid.New(), Username: "admin", Role: auth.RoleAdmin}

	ids := []string{mine.ID.String(), theirs.ID.String(), "garbage", uuid.NewString()}
	out, err := f.block.ExecuteBulk(ctx, vendor, ids, []string{"2025-06-01"}, Block)
	if err != nil {
		t.Fatal(err)
	}

	want := []bool{true, false, false, false}
	for i, o := range out {
		if o.Success != want[i] {
			t.Fatalf("result %d = %+v, want success=%v", i, o, want[i])
		}
	}
	if out[1].Error != "You can only manage your own services" {
		t.Fatalf("ownership error = %q", out[1].Error)
	}

	out, err = f.block.ExecuteBulk(ctx, admin, ids[:2], []string{"2025-06-01"}, Unblock)
	if err != nil {
		t.Fatal(err)
	}
	if !out[0].Success || !out[1].Success {
		t.Fatalf("admin bulk unblock = %+v", out)
	}

	_, err = f.block.ExecuteBulk(ctx, admin, nil, []string{"2025-06-01"}, Block)
	wantCode(t, err, "invalid_request")
}

// ======================================================
// Reviews
// ======================================================

func TestAddReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	svc := f.repo.addService("Hall", "v", 100)
	c := f.repo.addCustomer("Meera")
	in := AddReviewInput{CustomerID: c.ID, ServiceID: svc.ID, Rating: 5, Comment: "Lovely"}

	_, err := f.review.Execute(ctx, in)
	wantCode(t, err, "not_booked")

	b, _, err := f.book.Execute(ctx, BookServiceInput{CustomerID: c.ID, ServiceID: svc.ID, Date: "2025-06-01"})
	if err != nil {
		t.Fatal(err)
	}
	// a cancelled booking still counts as having booked the service
	if _, err := f.cancel.Execute(ctx, customerPrincipal(c), svc.ID, b.ID); err != nil {
		t.Fatal(err)
	}

	bad := in
	bad.Rating = 6
	_, err = f.review.Execute(ctx, bad)
	wantCode(t, err, "invalid_rating")

	r, err := f.review.Execute(ctx, in)
	if err != nil {
		t.Fatalf("first review: %v", err)
	}
	if r.User != "meera" || r.Rating != 5 {
		t.Fatalf("unexpected review %+v", r)
	}

	again := in
	again.Rating = 1
	again.Comment = "changed my mind"
	_, err = f.review.Execute(ctx, again)
	wantCode(t, err, "already_reviewed")
}

// ======================================================
// Catalog and history
// ======================================================

func ptr(f float64) *float64 { return &f }

func TestListServices(t *testing.T) {
	repo := newMemRepo()
	ctx := context.Background()

	good := repo.addService("Good", "v", 100)
	okay := repo.addService("Okay", "v", 100)
	unrated := repo.addService("Unrated", "v", 100)
	food := repo.addService("Feast", "v", 100)
	f := repo.services[food.ID]
	f.Category = models.CategoryCatering
	f.FoodType = models.FoodTypeVeg
	f.BlockedDates = []string{"2025-06-01"}
	repo.services[food.ID] = f

	repo.reviews = []models.Review{
		{ID: uuid.New(), ServiceID: good.ID, User: "a", Rating: 5},
		{ID: uuid.New(), ServiceID: good.ID, User: "b", Rating: 4},
		{ID: uuid.New(), ServiceID: okay.ID, User: "a", Rating: 3},
	}
	repo.bookings = []models.Booking{
		{ID: uuid.New(), ServiceID: okay.ID, BookedForDate: "2025-06-01", Status: "pending"},
	}

	uc := NewListServices(repo)

	t.Run("sorted by rating", func(t *testing.T) {
		views, err := uc.Execute(ctx, ListServicesInput{})
		if err != nil {
			t.Fatal(err)
		}
		if len(views) != 4 {
			t.Fatalf("got %d services, want 4", len(views))
		}
		if views[0].ID != good.ID || views[1].ID != okay.ID {
			t.Fatalf("order = %s, %s", views[0].Name, views[1].Name)
		}
		if views[0].AverageRating != 4.5 || views[0].ReviewCount != 2 {
			t.Fatalf("rating summary = %v/%d", views[0].AverageRating, views[0].ReviewCount)
		}
		for _, v := range views {
			if v.Bookings != nil {
				t.Fatal("bookings leaked into catalog view")
			}
			if v.AvailabilityStatus != "Date not selected" || !v.IsAvailable || v.SelectedDate != nil {
				t.Fatalf("undated view = %+v", v)
			}
		}
	})

	t.Run("availability on a date", func(t *testing.T) {
		views, err := uc.Execute(ctx, ListServicesInput{Date: "2025-06-01"})
		if err != nil {
			t.Fatal(err)
		}
		want := map[uuid.UUID]string{
			good.ID:    "Available",
			okay.ID:    "Booked",
			unrated.ID: "Available",
			food.ID:    "Blocked",
		}
		for _, v := range views {
			if v.AvailabilityStatus != want[v.ID] {
				t.Fatalf("%s status = %q, want %q", v.Name, v.AvailabilityStatus, want[v.ID])
			}
			if v.SelectedDate == nil || *v.SelectedDate != "2025-06-01" {
				t.Fatalf("selectedDate = %v", v.SelectedDate)
			}
		}
	})

	tests := []struct {
		name string
		in   ListServicesInput
		want int
	}{
		{name: "min rating drops unrated", in: ListServicesInput{MinRating: ptr(4)}, want: 1},
		{name: "zero min keeps unrated", in: ListServicesInput{MinRating: ptr(0)}, want: 4},
		{name: "max rating only", in: ListServicesInput{MaxRating: ptr(3.5)}, want: 3},
		{name: "category all", in: ListServicesInput{Category: "all"}, want: 4},
		{name: "catering food type", in: ListServicesInput{Category: "catering", FoodType: "nonveg"}, want: 0},
		{name: "food type ignored outside catering", in: ListServicesInput{Category: "venue", FoodType: "nonveg"}, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, err := uc.Execute(ctx, tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if len(views) != tt.want {
				t.Fatalf("got %d services, want %d", len(views), tt.want)
			}
		})
	}

	_, err := uc.Execute(ctx, ListServicesInput{Date: "2025-6-1"})
	wantCode(t, err, "invalid_date")
}

func TestGroupSessions(t *testing.T) {
	svc := &models.Service{
		Name:    "Hall",
		Reviews: []models.Review{{User: "meera", Rating: 4}},
	}
	early := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	bookings := []models.Booking{
		{ID: uuid.New(), DateBooked: early, BookedForDate: "2025-06-01", Service: svc},
		{ID: uuid.New(), DateBooked: late, BookedForDate: "2025-06-02", Service: svc},
		{ID: uuid.New(), DateBooked: early, BookedForDate: "2025-06-03"},
	}

	sessions := GroupSessions(bookings, "meera")
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
	if !sessions[0].DateBooked.Equal(late) || len(sessions[0].Bookings) != 1 {
		t.Fatalf("first session = %+v", sessions[0])
	}
	if len(sessions[1].Bookings) != 2 {
		t.Fatalf("second session has %d bookings", len(sessions[1].Bookings))
	}
	if !sessions[0].Bookings[0].HasReviewed || sessions[0].Bookings[0].ServiceName != "Hall" {
		t.Fatalf("service details missing: %+v", sessions[0].Bookings[0])
	}
	// deleted service
	if orphan := sessions[1].Bookings[1]; orphan.ServiceName != "" || orphan.HasReviewed {
		t.Fatalf("orphan booking = %+v", orphan)
	}

	if got := GroupSessions(nil, "x"); got == nil || len(got) != 0 {
		t.Fatalf("empty history = %#v", got)
	}
}

func TestStats(t *testing.T) {
	bookings := []models.Booking{
		{Status: "pending"},
		{Status: "confirmed"},
		{Status: "confirmed"},
		{Status: "cancelled"},
	}
	s := Stats(bookings, func(*models.Booking) float64 { return 250 })

	if s.TotalBookings != 4 || s.PendingBookings != 1 || s.ConfirmedBookings != 2 || s.CancelledBookings != 1 {
		t.Fatalf("stats = %+v", s)
	}
	if s.TotalRevenue != 500 {
		t.Fatalf("revenue = %v, want 500", s.TotalRevenue)
	}
}
