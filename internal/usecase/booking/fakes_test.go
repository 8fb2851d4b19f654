package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/odnowakanapowa/booking-api/internal/audit"
	"github.com/odnowakanapowa/booking-api/internal/cache"
	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/mailer"
	"github.com/odnowakanapowa/booking-api/internal/models"
	"github.com/odnowakanapowa/booking-api/internal/timezone"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	mu       sync.Mutex
	services map[uint]models.Service
	byID     map[uint]*models.Appointment
	items    map[uint][]models.AppointmentService
	nextID   uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo(services ...models.Service) *fakeRepo {
	r := &fakeRepo{
		services: make(map[uint]models.Service),
		byID:     make(map[uint]*models.Appointment),
		items:    make(map[uint][]models.AppointmentService),
	}
	for _, s := range services {
		r.services[s.ID] = s
	}
	return r
}

func (r *fakeRepo) ListServices(_ context.Context, activeOnly bool) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Service, 0, len(r.services))
	for _, s := range r.services {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) GetServicesByIDs(_ context.Context, ids []uint) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) BookedTimes(_ context.Context, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, ap := range r.byID {
		if ap.Date == date && ap.Status != string(domain.StatusCancelled) {
			out = append(out, ap.Time)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeRepo) OccupiedDates(_ context.Context, endDate string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool)
	for _, ap := range r.byID {
		if ap.Status != string(domain.StatusCancelled) && ap.Date <= endDate {
			seen[ap.Date] = true
		}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeRepo) HasSlotConflict(_ context.Context, date, timeStr string, excludeID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conflictLocked(date, timeStr, excludeID), nil
}

func (r *fakeRepo) conflictLocked(date, timeStr string, excludeID uint) bool {
	for _, ap := range r.byID {
		if ap.ID == excludeID {
			continue
		}
		if ap.Date == date && ap.Time == timeStr && ap.Status != string(domain.StatusCancelled) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment, items []models.AppointmentService) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflictLocked(ap.Date, ap.Time, 0) {
		return httperr.ErrBusiness("slot_taken")
	}

	r.nextID++
	ap.ID = r.nextID

	cp := *ap
	r.byID[ap.ID] = &cp

	rows := make([]models.AppointmentService, len(items))
	copy(rows, items)
	for i := range rows {
		rows[i].AppointmentID = ap.ID
	}
	r.items[ap.ID] = rows
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.byID[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := r.hydrateLocked(ap)
	return &cp, nil
}

// hydrateLocked mirrors the gorm repo's Services.Service preload.
func (r *fakeRepo) hydrateLocked(ap *models.Appointment) models.Appointment {
	cp := *ap
	rows := make([]models.AppointmentService, len(r.items[ap.ID]))
	copy(rows, r.items[ap.ID])
	for i := range rows {
		rows[i].Service = r.services[rows[i].ServiceID]
	}
	cp.Services = rows
	return cp
}

func (r *fakeRepo) ListByUser(_ context.Context, userID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.byID {
		if ap.UserID != nil && *ap.UserID == userID {
			out = append(out, r.hydrateLocked(ap))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Appointment, 0, len(r.byID))
	for _, ap := range r.byID {
		out = append(out, r.hydrateLocked(ap))
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(aps []models.Appointment) {
	sort.Slice(aps, func(i, j int) bool {
		if aps[i].Date != aps[j].Date {
			return aps[i].Date > aps[j].Date
		}
		return aps[i].Time > aps[j].Time
	})
}

func (r *fakeRepo) SaveAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[ap.ID]; !ok {
		return errors.New("record not found")
	}
	cp := *ap
	cp.Services = nil
	r.byID[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) ReplaceAppointmentServices(_ context.Context, appointmentID uint, items []models.AppointmentService) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]models.AppointmentService, len(items))
	copy(rows, items)
	for i := range rows {
		rows[i].AppointmentID = appointmentID
	}
	r.items[appointmentID] = rows
	return nil
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// ======================================================
// FAKE NOTIFIER
// ======================================================

type fakeNotifier struct {
	fail bool
	sent chan string
}

var _ mailer.Notifier = (*fakeNotifier)(nil)

func newFakeNotifier(fail bool) *fakeNotifier {
	return &fakeNotifier{fail: fail, sent: make(chan string, 16)}
}

func (n *fakeNotifier) record(kind string) error {
	n.sent <- kind
	if n.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (n *fakeNotifier) SendBookingPending(mailer.BookingEmail) error {
	return n.record("pending")
}

func (n *fakeNotifier) SendBookingConfirmed(mailer.BookingEmail) error {
	return n.record("confirmed")
}

func (n *fakeNotifier) SendContactMessage(mailer.ContactEmail) error {
	return n.record("contact")
}

func (n *fakeNotifier) SendAccountConfirmation(mailer.ConfirmEmail) error {
	return n.record("account")
}

func waitForMail(t *testing.T, n *fakeNotifier, kind string) {
	t.Helper()
	select {
	case got := <-n.sent:
		if got != kind {
			t.Fatalf("expected %q mail, got %q", kind, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no %q mail dispatched", kind)
	}
}

// ======================================================
// TEST WIRING
// ======================================================

type testEnv struct {
	repo     *fakeRepo
	notifier *fakeNotifier
	mail     *mailer.Dispatcher
	audit    *audit.Dispatcher
	cache    *cache.Cache // nil: every cache op is a no-op
}

func newTestEnv(services ...models.Service) *testEnv {
	return newTestEnvWithNotifier(newFakeNotifier(false), services...)
}

func newTestEnvWithNotifier(n *fakeNotifier, services ...models.Service) *testEnv {
	return &testEnv{
		repo:     newFakeRepo(services...),
		notifier: n,
		mail:     mailer.NewDispatcher(n),
		audit:    audit.NewDispatcher(audit.New(nil)),
	}
}

func futureDate(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format(domain.DateLayout)
}
