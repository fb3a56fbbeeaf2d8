package termination

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/jfraser77/hrops-backend/internal/domain/inventory"
	"github.com/jfraser77/hrops-backend/internal/domain/termination"
	"github.com/jfraser77/hrops-backend/internal/domain/user"
	"github.com/jfraser77/hrops-backend/internal/pkg/email"
	"github.com/jfraser77/hrops-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

// fakeTxRunner runs the closure directly; the fakes below are not
// transactional.
type fakeTxRunner struct{}

func (fakeTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTerminationRepo struct {
	records map[int64]termination.Termination
	nextID  int64
}

func newFakeTerminationRepo() *fakeTerminationRepo {
	return &fakeTerminationRepo{records: map[int64]termination.Termination{}, nextID: 1}
}

func (r *fakeTerminationRepo) Create(_ context.Context, t termination.Termination) (termination.Termination, error) {
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = testNow
	t.UpdatedAt = testNow
	r.records[t.ID] = t
	return t, nil
}

func (r *fakeTerminationRepo) GetByID(_ context.Context, id int64) (termination.Termination, error) {
	t, ok := r.records[id]
	if !ok {
		return termination.Termination{}, termination.ErrTerminationNotFound
	}
	t.Checklist = t.Checklist.Clone()
	return t, nil
}

func (r *fakeTerminationRepo) Update(_ context.Context, id int64, fields termination.UpdateFields) error {
	t, ok := r.records[id]
	if !ok {
		return termination.ErrTerminationNotFound
	}
	if fields.EmployeeName != nil {
		t.EmployeeName = *fields.EmployeeName
	}
	if fields.EmployeeEmail != nil {
		t.EmployeeEmail = *fields.EmployeeEmail
	}
	if fields.JobTitle != nil {
		t.JobTitle = fields.JobTitle
	}
	if fields.Department != nil {
		t.Department = fields.Department
	}
	if fields.TerminationDate != nil {
		t.TerminationDate = *fields.TerminationDate
	}
	if fields.TerminationReason != nil {
		t.TerminationReason = fields.TerminationReason
	}
	if fields.InitiatedBy != nil {
		t.InitiatedBy = fields.InitiatedBy
	}
	if fields.Status != nil {
		t.Status = *fields.Status
	}
	if fields.TrackingNumber != nil {
		t.TrackingNumber = fields.TrackingNumber
	}
	if fields.EquipmentDisposition != nil {
		t.EquipmentDisposition = *fields.EquipmentDisposition
	}
	if fields.CompletedByUserID != nil {
		t.CompletedByUserID = fields.CompletedByUserID
	}
	if fields.Checklist != nil {
		t.Checklist = fields.Checklist.Clone()
	}
	if fields.IsOverdue != nil {
		t.IsOverdue = *fields.IsOverdue
	}
	t.UpdatedAt = testNow
	r.records[id] = t
	return nil
}

func (r *fakeTerminationRepo) UpdateChecklist(_ context.Context, id int64, checklist termination.Checklist) error {
	t, ok := r.records[id]
	if !ok {
		return termination.ErrTerminationNotFound
	}
	t.Checklist = checklist.Clone()
	r.records[id] = t
	return nil
}

func (r *fakeTerminationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.records[id]; !ok {
		return termination.ErrTerminationNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeTerminationRepo) List(_ context.Context, filter termination.ListFilter, now time.Time) ([]termination.Termination, error) {
	cutoff := now.AddDate(0, 0, -termination.OverdueThresholdDays)
	var result []termination.Termination
	for _, t := range r.records {
		switch filter {
		case termination.FilterArchived:
			if t.Status != termination.StatusArchived {
				continue
			}
		case termination.FilterOverdue:
			stale := t.Status == termination.StatusPending && !t.TerminationDate.After(cutoff)
			if t.Status != termination.StatusOverdue && !stale {
				continue
			}
		default:
			if t.Status == termination.StatusArchived {
				continue
			}
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeTerminationRepo) ListOverdueCandidates(_ context.Context, cutoff time.Time) ([]termination.Termination, error) {
	var result []termination.Termination
	for _, t := range r.records {
		if t.Status == termination.StatusPending && !t.TerminationDate.After(cutoff) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeTerminationRepo) PromoteToOverdue(_ context.Context, id int64) (bool, error) {
	t, ok := r.records[id]
	if !ok || t.Status != termination.StatusPending {
		return false, nil
	}
	t.Status = termination.StatusOverdue
	t.IsOverdue = true
	r.records[id] = t
	return true, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ListByRoles(_ context.Context, roles []user.Role) ([]user.User, error) {
	var result []user.User
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				result = append(result, u)
				break
			}
		}
	}
	return result, nil
}

type fakeInventoryRepo struct {
	counters map[string]int
}

func (r *fakeInventoryRepo) AdjustAvailable(_ context.Context, userID string, delta int) (int, error) {
	next := r.counters[userID] + delta
	if next < 0 {
		next = 0
	}
	r.counters[userID] = next
	return next, nil
}

func (r *fakeInventoryRepo) GetByUserID(_ context.Context, userID string) (inventory.StaffInventory, error) {
	count, ok := r.counters[userID]
	if !ok {
		return inventory.StaffInventory{}, inventory.ErrStaffNotFound
	}
	return inventory.StaffInventory{UserID: userID, AvailableLaptops: count}, nil
}

func (r *fakeInventoryRepo) List(_ context.Context) ([]inventory.StaffInventory, error) {
	var result []inventory.StaffInventory
	for id, count := range r.counters {
		result = append(result, inventory.StaffInventory{UserID: id, AvailableLaptops: count})
	}
	return result, nil
}

type sentEmail struct {
	kind string
	to   []string
	cc   []string
	data email.OverdueEmailData
}

type fakeEmailService struct {
	sent []sentEmail
	fail bool
}

func (s *fakeEmailService) SendOverdueReminder(to string, cc []string, data email.OverdueEmailData) error {
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, sentEmail{kind: "reminder", to: []string{to}, cc: cc, data: data})
	return nil
}

func (s *fakeEmailService) SendOverdueAlert(to []string, data email.OverdueEmailData) error {
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, sentEmail{kind: "alert", to: to, data: data})
	return nil
}

type fixture struct {
	svc       *TerminationService
	repo      *fakeTerminationRepo
	users     *fakeUserRepo
	inventory *fakeInventoryRepo
	emails    *fakeEmailService
}

func newFixture() *fixture {
	repo := newFakeTerminationRepo()
	users := &fakeUserRepo{users: map[string]user.User{
		"it-1": {ID: "it-1", Name: "Dana Ops", Email: "dana@example.com", Role: user.RoleIT},
	}}
	inv := &fakeInventoryRepo{counters: map[string]int{"it-1": 2}}
	emails := &fakeEmailService{}

	svc := NewTerminationService(fakeTxRunner{}, repo, users, inv, emails, []string{"hr@example.com"})
	svc.now = func() time.Time { return testNow }

	return &fixture{svc: svc, repo: repo, users: users, inventory: inv, emails: emails}
}

func (f *fixture) create(t *testing.T, daysAgo int) termination.Termination {
	t.Helper()
	date := testNow.AddDate(0, 0, -daysAgo).Format("2006-01-02")
	record, err := f.svc.Create(context.Background(), termination.CreateTerminationRequest{
		EmployeeName:    "Jordan Reyes",
		EmployeeEmail:   "jordan.reyes@example.com",
		TerminationDate: date,
	})
	require.NoError(t, err)
	return record
}

func TestCreateAppliesDefaultChecklist(t *testing.T) {
	f := newFixture()

	record := f.create(t, 5)

	assert.Equal(t, termination.StatusPending, record.Status)
	assert.Equal(t, termination.DispositionPendingAssessment, record.EquipmentDisposition)
	assert.Len(t, record.Checklist, 18)
	assert.Equal(t, 5, record.DaysPassed)
	assert.Equal(t, 25, record.DaysRemaining)
	assert.False(t, record.IsOverdue)
}

func TestCreateKeepsProvidedChecklist(t *testing.T) {
	f := newFixture()

	record, err := f.svc.Create(context.Background(), termination.CreateTerminationRequest{
		EmployeeName:    "Jordan Reyes",
		EmployeeEmail:   "jordan.reyes@example.com",
		TerminationDate: "2025-06-20",
		Checklist: termination.Checklist{
			{ID: "1", Category: "Software Access", Description: "Revoke lab access"},
		},
	})
	require.NoError(t, err)

	require.Len(t, record.Checklist, 1)
	assert.Equal(t, "Revoke lab access", record.Checklist[0].Description)
}

func TestCreateRejectsBadDate(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), termination.CreateTerminationRequest{
		EmployeeName:    "Jordan Reyes",
		EmployeeEmail:   "jordan.reyes@example.com",
		TerminationDate: "20-06-2025",
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
}

func TestGetComputesOverdueFromClock(t *testing.T) {
	f := newFixture()
	created := f.create(t, 40)

	record, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)

	// Still pending in storage, but time-accurate on read
	assert.Equal(t, termination.StatusPending, record.Status)
	assert.True(t, record.IsOverdue)
	assert.Equal(t, 40, record.DaysPassed)
	assert.Equal(t, 0, record.DaysRemaining)
}

func TestGetNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, termination.ErrTerminationNotFound)
}

func TestUpdatePartial(t *testing.T) {
	f := newFixture()
	created := f.create(t, 5)

	jobTitle := "Radiology Tech"
	record, err := f.svc.Update(context.Background(), created.ID, termination.UpdateTerminationRequest{
		JobTitle: &jobTitle,
	})
	require.NoError(t, err)

	require.NotNil(t, record.JobTitle)
	assert.Equal(t, "Radiology Tech", *record.JobTitle)
	// Untouched fields survive
	assert.Equal(t, "Jordan Reyes", record.EmployeeName)
	assert.Len(t, record.Checklist, 18)
}

func TestSetItemCompletionStampsActor(t *testing.T) {
	f := newFixture()
	created := f.create(t, 5)

	record, err := f.svc.SetItemCompletion(context.Background(), created.ID, "3", true, "Dana Ops")
	require.NoError(t, err)

	item := record.Checklist[2]
	assert.True(t, item.Completed)
	require.NotNil(t, item.CompletedBy)
	assert.Equal(t, "Dana Ops", *item.CompletedBy)
	require.NotNil(t, item.CompletedDate)
	assert.Equal(t, testNow, *item.CompletedDate)
}

func TestSetItemCompletionUnknownItem(t *testing.T) {
	f := newFixture()
	created := f.create(t, 5)

	_, err := f.svc.SetItemCompletion(context.Background(), created.ID, "nope", true, "Dana Ops")
	assert.ErrorIs(t, err, termination.ErrChecklistItemNotFound)

	// Failed mutation leaves the stored checklist untouched
	record, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, record.Checklist.CompletedCount())
}

func TestBulkSetChecklistByCategory(t *testing.T) {
	f := newFixture()
	created := f.create(t, 5)

	category := termination.CategoryMicrosoft365
	record, err := f.svc.BulkSetChecklist(context.Background(), created.ID, &category, true, "Dana Ops")
	require.NoError(t, err)

	assert.Equal(t, 5, record.Checklist.CompletedCount())
	for _, item := range record.Checklist {
		assert.Equal(t, item.Category == category, item.Completed, item.ID)
	}
}

func TestBulkSetChecklistAll(t *testing.T) {
	f := newFixture()
	created := f.create(t, 5)

	record, err := f.svc.BulkSetChecklist(context.Background(), created.ID, nil, true, "Dana Ops")
	require.NoError(t, err)

	assert.True(t, record.Checklist.IsComplete())
}

func TestAddAndRemoveChecklistItem(t *testing.T) {
	f := newFixture()
	created := f.create(t, 5)

	record, err := f.svc.AddChecklistItem(context.Background(), created.ID, "Software Access", "Revoke PACS access")
	require.NoError(t, err)
	require.Len(t, record.Checklist, 19)

	added := record.Checklist[18]
	assert.Contains(t, added.ID, "custom-")

	record, err = f.svc.RemoveChecklistItem(context.Background(), created.ID, added.ID)
	require.NoError(t, err)
	assert.Len(t, record.Checklist, 18)
}

func TestMarkEquipmentReturnedToPool(t *testing.T) {
	f := newFixture()
	created := f.create(t, 40)

	record, err := f.svc.MarkEquipmentReturned(context.Background(), created.ID, termination.MarkReturnedRequest{
		TrackingNumber:       "1Z999AA10123456784",
		EquipmentDisposition: "return_to_pool",
		CompletedByUserID:    "it-1",
	})
	require.NoError(t, err)

	assert.Equal(t, termination.StatusEquipmentReturned, record.Status)
	require.NotNil(t, record.TrackingNumber)
	assert.Equal(t, "1Z999AA10123456784", *record.TrackingNumber)
	require.NotNil(t, record.CompletedByUserName)
	assert.Equal(t, "Dana Ops", *record.CompletedByUserName)
	assert.False(t, record.IsOverdue)

	// Laptop credited to the handling staff member
	assert.Equal(t, 3, f.inventory.counters["it-1"])
}

func TestMarkEquipmentReturnedRetire(t *testing.T) {
	f := newFixture()
	created := f.create(t, 10)

	record, err := f.svc.MarkEquipmentReturned(context.Background(), created.ID, termination.MarkReturnedRequest{
		TrackingNumber:       "1Z999AA10123456784",
		EquipmentDisposition: "retire",
		CompletedByUserID:    "it-1",
	})
	require.NoError(t, err)

	assert.Equal(t, termination.StatusEquipmentReturned, record.Status)
	// Retired hardware does not touch the pool
	assert.Equal(t, 2, f.inventory.counters["it-1"])
}

func TestMarkEquipmentReturnedRejectsPendingAssessment(t *testing.T) {
	f := newFixture()
	created := f.create(t, 10)

	_, err := f.svc.MarkEquipmentReturned(context.Background(), created.ID, termination.MarkReturnedRequest{
		TrackingNumber:       "1Z999AA10123456784",
		EquipmentDisposition: "pending_assessment",
		CompletedByUserID:    "it-1",
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
}

func TestMarkEquipmentReturnedUnknownStaff(t *testing.T) {
	f := newFixture()
	created := f.create(t, 10)

	_, err := f.svc.MarkEquipmentReturned(context.Background(), created.ID, termination.MarkReturnedRequest{
		TrackingNumber:       "1Z999AA10123456784",
		EquipmentDisposition: "return_to_pool",
		CompletedByUserID:    "ghost",
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestMarkEquipmentReturnedAlreadyArchived(t *testing.T) {
	f := newFixture()
	record := f.archiveReady(t)

	_, err := f.svc.Archive(context.Background(), record.ID)
	require.NoError(t, err)

	_, err = f.svc.MarkEquipmentReturned(context.Background(), record.ID, termination.MarkReturnedRequest{
		TrackingNumber:       "1Z999AA10123456784",
		EquipmentDisposition: "retire",
		CompletedByUserID:    "it-1",
	})
	assert.ErrorIs(t, err, termination.ErrAlreadyArchived)
}

// archiveReady walks a fresh record through checklist completion and an
// equipment return so it passes every archival gate.
func (f *fixture) archiveReady(t *testing.T) termination.Termination {
	t.Helper()
	created := f.create(t, 10)

	_, err := f.svc.BulkSetChecklist(context.Background(), created.ID, nil, true, "Dana Ops")
	require.NoError(t, err)

	record, err := f.svc.MarkEquipmentReturned(context.Background(), created.ID, termination.MarkReturnedRequest{
		TrackingNumber:       "1Z999AA10123456784",
		EquipmentDisposition: "return_to_pool",
		CompletedByUserID:    "it-1",
	})
	require.NoError(t, err)
	return record
}

func TestArchiveEligible(t *testing.T) {
	f := newFixture()
	record := f.archiveReady(t)

	archived, err := f.svc.Archive(context.Background(), record.ID)
	require.NoError(t, err)

	assert.Equal(t, termination.StatusArchived, archived.Status)
	assert.False(t, archived.IsOverdue)
}

func TestArchiveBlocked(t *testing.T) {
	f := newFixture()
	created := f.create(t, 10)

	_, err := f.svc.Archive(context.Background(), created.ID)

	var notEligible *termination.NotEligibleError
	require.ErrorAs(t, err, &notEligible)
	assert.Contains(t, notEligible.Blockers, "equipment has not been marked as returned")
	assert.Contains(t, notEligible.Blockers, "offboarding checklist is not fully complete")

	// Record is untouched
	record, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, termination.StatusPending, record.Status)
}

func TestArchiveAlreadyArchived(t *testing.T) {
	f := newFixture()
	record := f.archiveReady(t)

	_, err := f.svc.Archive(context.Background(), record.ID)
	require.NoError(t, err)

	_, err = f.svc.Archive(context.Background(), record.ID)
	assert.ErrorIs(t, err, termination.ErrAlreadyArchived)
}

func TestSweepOverduePromotesAndNotifies(t *testing.T) {
	f := newFixture()
	stale := f.create(t, 45)
	f.create(t, 5) // fresh, untouched

	examined, err := f.svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, examined)

	record, err := f.svc.Get(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.Equal(t, termination.StatusOverdue, record.Status)
	assert.True(t, record.IsOverdue)

	// One reminder to the employee with HR CC'd, one alert to HR
	require.Len(t, f.emails.sent, 2)
	reminder := f.emails.sent[0]
	assert.Equal(t, "reminder", reminder.kind)
	assert.Equal(t, []string{"jordan.reyes@example.com"}, reminder.to)
	assert.Equal(t, []string{"hr@example.com"}, reminder.cc)
	assert.Equal(t, 45, reminder.data.DaysSince)

	alert := f.emails.sent[1]
	assert.Equal(t, "alert", alert.kind)
	assert.Equal(t, []string{"hr@example.com"}, alert.to)
}

func TestSweepOverdueIsIdempotent(t *testing.T) {
	f := newFixture()
	f.create(t, 45)

	examined, err := f.svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, examined)

	// Second run finds nothing pending; no duplicate notifications
	examined, err = f.svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, examined)
	assert.Len(t, f.emails.sent, 2)
}

func TestSweepOverdueSurvivesEmailFailure(t *testing.T) {
	f := newFixture()
	stale := f.create(t, 45)
	f.emails.fail = true

	examined, err := f.svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, examined)

	// The promotion stands even though nobody was told
	record, err := f.svc.Get(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.Equal(t, termination.StatusOverdue, record.Status)
}

func TestListFilters(t *testing.T) {
	f := newFixture()
	f.create(t, 45)            // stale pending
	f.create(t, 5)             // fresh pending
	ready := f.archiveReady(t) // equipment returned
	_, err := f.svc.Archive(context.Background(), ready.ID)
	require.NoError(t, err)

	active, err := f.svc.List(context.Background(), termination.FilterActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	// The overdue view includes stale pending records the sweep has not
	// promoted yet
	overdue, err := f.svc.List(context.Background(), termination.FilterOverdue)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.True(t, overdue[0].IsOverdue)

	archived, err := f.svc.List(context.Background(), termination.FilterArchived)
	require.NoError(t, err)
	assert.Len(t, archived, 1)
}

func TestOffboardingLifecycle(t *testing.T) {
	f := newFixture()
	created := f.create(t, 45)

	// Sweep promotes the stale record and notifies
	_, err := f.svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	require.Len(t, f.emails.sent, 2)

	// IT works through the checklist
	_, err = f.svc.BulkSetChecklist(context.Background(), created.ID, nil, true, "Dana Ops")
	require.NoError(t, err)

	// Equipment comes back to the pool
	record, err := f.svc.MarkEquipmentReturned(context.Background(), created.ID, termination.MarkReturnedRequest{
		TrackingNumber:       "1Z999AA10123456784",
		EquipmentDisposition: "return_to_pool",
		CompletedByUserID:    "it-1",
	})
	require.NoError(t, err)
	assert.False(t, record.IsOverdue)
	assert.Equal(t, 3, f.inventory.counters["it-1"])

	// And the record closes out
	archived, err := f.svc.Archive(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, termination.StatusArchived, archived.Status)
}
