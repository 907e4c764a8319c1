package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	ledgerRepo "scoutai/database/repository/ledger"
	"scoutai/models"
	"scoutai/services/availability"
	"scoutai/services/catalog"
	"scoutai/services/notification"
)

// fakeLedger records mutations and serves canned records.
type fakeLedger struct {
	nextID     int64
	createErr  error
	updateErr  error
	created    int
	deleted    []int64
	updated    []struct {
		id     int64
		date   string
		guests int
	}
	records map[int64]*models.VerifiedBooking
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{nextID: 100, records: map[int64]*models.VerifiedBooking{}}
}

func (f *fakeLedger) CreateBooking(ctx context.Context, name, email, phone, location, module, startDate string, nights, guests int, totalCost float64) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	f.created++
	return f.nextID, nil
}

func (f *fakeLedger) DeleteBooking(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeLedger) UpdateBooking(ctx context.Context, id int64, newDate string, newGuests int, newTotal float64) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, struct {
		id     int64
		date   string
		guests int
	}{id, newDate, newGuests})
	return nil
}

func (f *fakeLedger) UpdateStatus(ctx context.Context, id int64, status string) error { return nil }

func (f *fakeLedger) GetByID(ctx context.Context, id int64) (*models.VerifiedBooking, error) {
	vb, ok := f.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return vb, nil
}

func (f *fakeLedger) GetByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeLedger) ListBookings(ctx context.Context, filter ledgerRepo.BookingFilter) ([]models.VerifiedBooking, error) {
	return nil, nil
}

func (f *fakeLedger) ListCustomers(ctx context.Context) ([]models.Customer, error) { return nil, nil }

// fakeNotifier returns configured results and records every send.
type fakeNotifier struct {
	confirmOK bool
	cancelOK  bool
	updateOK  bool
	confirms  int
	cancels   int
	updates   []notification.ChangeSummary
}

func (f *fakeNotifier) SendConfirmationEmail(toEmail, name string, bookingID int64, draft models.BookingDraft) bool {
	f.confirms++
	return f.confirmOK
}

func (f *fakeNotifier) SendCancellationEmail(toEmail, name string, bookingID int64) bool {
	f.cancels++
	return f.cancelOK
}

func (f *fakeNotifier) SendUpdateEmail(toEmail, name string, bookingID int64, oldDetails, newDetails notification.ChangeSummary) bool {
	f.updates = append(f.updates, newDetails)
	return f.updateOK
}

func (f *fakeNotifier) SendReminderEmail(toEmail, name string, booking models.Booking) bool {
	return true
}

// fakeExtractor returns a fixed result; the zero value simulates a miss.
type fakeExtractor struct {
	result models.ExtractedDetails
}

func (f *fakeExtractor) Extract(ctx context.Context, text, contextHint string) models.ExtractedDetails {
	return f.result
}

func newTestService(t *testing.T) (*DefaultConversationService, *fakeLedger, *fakeNotifier, *fakeExtractor) {
	t.Helper()
	store := catalog.Default()
	engine := availability.NewEngine(store)
	now, _ := time.Parse("2006-01-02", "2026-01-05")
	engine.Now = func() time.Time { return now }

	ledger := newFakeLedger()
	notifier := &fakeNotifier{confirmOK: true, cancelOK: true, updateOK: true}
	ex := &fakeExtractor{}
	svc := &DefaultConversationService{
		Catalog:   store,
		Engine:    engine,
		Extractor: ex,
		Ledger:    ledger,
		Notifier:  notifier,
	}
	return svc, ledger, notifier, ex
}

func process(t *testing.T, svc *DefaultConversationService, session *models.Session, input string) string {
	t.Helper()
	reply, claimed := svc.Process(context.Background(), session, input)
	if !claimed {
		t.Fatalf("input %q was not claimed in state %s", input, session.State)
	}
	return reply
}

func TestUnclaimedInputFallsThrough(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	session := models.NewSession("s1")

	if _, claimed := svc.Process(context.Background(), session, "what's the weather like?"); claimed {
		t.Fatal("small talk should not be claimed in IDLE")
	}
	if session.State != models.StateIdle {
		t.Fatalf("state changed to %s", session.State)
	}
}

func TestBookingHappyPath(t *testing.T) {
	svc, ledger, notifier, _ := newTestService(t)
	session := models.NewSession("s1")

	reply := process(t, svc, session, "I want to book camping in coorg")
	if session.State != models.StateWaitingForSelection {
		t.Fatalf("state %s, want WAITING_FOR_SELECTION", session.State)
	}
	if len(session.SelectionRows) == 0 {
		t.Fatal("no selection rows offered")
	}
	if !strings.Contains(reply, "Coorg") {
		t.Errorf("reply %q does not name the destination", reply)
	}

	// The UI stages the chosen row before sending the sentinel.
	row := session.SelectionRows[0]
	session.Draft.ModuleKey = row.ModuleKey
	session.Draft.Date = row.RawDate
	process(t, svc, session, models.EventSelectionConfirm)
	if session.State != models.StateVerifySelection {
		t.Fatalf("state %s, want VERIFY_SELECTION", session.State)
	}

	process(t, svc, session, "yes")
	if session.State != models.StateCheckGuests {
		t.Fatalf("state %s, want CHECK_GUESTS", session.State)
	}

	process(t, svc, session, "4 of us")
	if session.State != models.StateGetDetails {
		t.Fatalf("state %s, want GET_DETAILS", session.State)
	}
	if session.Draft.Guests != 4 {
		t.Fatalf("guests %d, want 4", session.Draft.Guests)
	}

	process(t, svc, session, "john doe")
	if session.Draft.Name != "John Doe" {
		t.Fatalf("name %q, want John Doe", session.Draft.Name)
	}
	process(t, svc, session, "John@Example.com")
	if session.Draft.Email != "john@example.com" {
		t.Fatalf("email %q not lowercased", session.Draft.Email)
	}
	reply = process(t, svc, session, "call me at 98765-43210")
	if session.State != models.StateConfirm {
		t.Fatalf("state %s, want CONFIRM", session.State)
	}
	if session.Draft.Phone != "9876543210" {
		t.Fatalf("phone %q, want 9876543210", session.Draft.Phone)
	}
	// module_a in coorg is 1500 per guest per night.
	if session.Draft.TotalCost != 6000 {
		t.Fatalf("total %v, want 6000", session.Draft.TotalCost)
	}
	if !strings.Contains(reply, "Total: INR 6000") {
		t.Errorf("summary %q missing total", reply)
	}

	reply = process(t, svc, session, "YES")
	if ledger.created != 1 {
		t.Fatalf("created %d bookings, want 1", ledger.created)
	}
	if notifier.confirms != 1 {
		t.Fatalf("sent %d confirmations, want 1", notifier.confirms)
	}
	if len(ledger.deleted) != 0 {
		t.Fatalf("rollback ran on the happy path: %v", ledger.deleted)
	}
	if session.State != models.StateIdle {
		t.Fatalf("state %s, want IDLE after success", session.State)
	}
	if !strings.Contains(reply, "Booking ID: #101") {
		t.Errorf("reply %q missing booking id", reply)
	}
}

func TestGuestValidationNeverAdvances(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateCheckGuests
	session.Draft.Location = "coorg"
	session.Draft.ModuleKey = "module_a"
	session.Draft.Date = "2026-01-09"

	reply := process(t, svc, session, "a few of us")
	if session.State != models.StateCheckGuests {
		t.Fatalf("non-numeric input advanced to %s", session.State)
	}
	if reply != "Please enter a number (e.g., 2)." {
		t.Errorf("unexpected reply %q", reply)
	}

	reply = process(t, svc, session, "0")
	if session.State != models.StateCheckGuests {
		t.Fatalf("zero guests advanced to %s", session.State)
	}
	if reply != "Please enter at least 1 guest." {
		t.Errorf("unexpected reply %q", reply)
	}

	// Above module_a capacity (10).
	reply = process(t, svc, session, "15")
	if session.State != models.StateCheckGuests {
		t.Fatalf("over-capacity advanced to %s", session.State)
	}
	if !strings.Contains(reply, "Error:") {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestGuestExtractorFallback(t *testing.T) {
	svc, _, _, ex := newTestService(t)
	ex.result = models.ExtractedDetails{Guests: 3}
	session := models.NewSession("s1")
	session.State = models.StateCheckGuests
	session.Draft.Location = "coorg"
	session.Draft.ModuleKey = "module_a"
	session.Draft.Date = "2026-01-09"

	process(t, svc, session, "me, my wife and our son")
	if session.State != models.StateGetDetails {
		t.Fatalf("state %s, want GET_DETAILS", session.State)
	}
	if session.Draft.Guests != 3 {
		t.Fatalf("guests %d, want 3", session.Draft.Guests)
	}
}

func TestContactFieldsStrictOrder(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateGetDetails
	session.Draft.Location = "coorg"
	session.Draft.ModuleKey = "module_a"
	session.Draft.Date = "2026-01-09"
	session.Draft.Guests = 2

	// Name first: digits-only and too-short inputs are rejected.
	process(t, svc, session, "42")
	if session.Draft.Name != "" {
		t.Fatalf("numeric name accepted: %q", session.Draft.Name)
	}
	process(t, svc, session, "x")
	if session.Draft.Name != "" {
		t.Fatalf("one-letter name accepted: %q", session.Draft.Name)
	}
	process(t, svc, session, "jane roe")

	// Then email.
	reply := process(t, svc, session, "not-an-email")
	if session.Draft.Email != "" {
		t.Fatalf("invalid email accepted: %q", session.Draft.Email)
	}
	if !strings.Contains(reply, "valid email") {
		t.Errorf("unexpected reply %q", reply)
	}
	process(t, svc, session, "jane@example.com")

	// Then phone, exactly ten digits after stripping separators.
	reply = process(t, svc, session, "12345")
	if session.Draft.Phone != "" {
		t.Fatal("short phone accepted")
	}
	if !strings.Contains(reply, "(You entered 5)") {
		t.Errorf("unexpected reply %q", reply)
	}
	process(t, svc, session, "(987) 654-3210")
	if session.Draft.Phone != "9876543210" {
		t.Fatalf("phone %q, want 9876543210", session.Draft.Phone)
	}
	if session.State != models.StateConfirm {
		t.Fatalf("state %s, want CONFIRM", session.State)
	}
}

func TestConfirmRollsBackWhenEmailFails(t *testing.T) {
	svc, ledger, notifier, _ := newTestService(t)
	notifier.confirmOK = false

	session := models.NewSession("s1")
	session.State = models.StateConfirm
	session.Draft = models.BookingDraft{
		Location: "coorg", ModuleKey: "module_a", ModuleName: "Module A: Riverside Camping",
		Date: "2026-01-09", Nights: 1, Guests: 2, TotalCost: 3000,
		Name: "Jane Roe", Email: "jane@example.com", Phone: "9876543210",
	}

	reply := process(t, svc, session, "yes")
	if ledger.created != 1 {
		t.Fatalf("created %d bookings, want 1", ledger.created)
	}
	if len(ledger.deleted) != 1 || ledger.deleted[0] != 101 {
		t.Fatalf("rollback deletions %v, want [101]", ledger.deleted)
	}
	if session.State != models.StateIdle {
		t.Fatalf("state %s, want IDLE", session.State)
	}
	if reply != "Failed. Email could not be sent. Booking cancelled." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestConfirmDatabaseError(t *testing.T) {
	svc, ledger, notifier, _ := newTestService(t)
	ledger.createErr = errors.New("down")

	session := models.NewSession("s1")
	session.State = models.StateConfirm
	session.Draft = models.BookingDraft{
		Location: "coorg", ModuleKey: "module_a", Date: "2026-01-09",
		Nights: 1, Guests: 2, Name: "Jane Roe", Email: "jane@example.com", Phone: "9876543210",
	}

	reply := process(t, svc, session, "yes")
	if notifier.confirms != 0 {
		t.Fatal("email sent despite failed create")
	}
	if session.State != models.StateIdle {
		t.Fatalf("state %s, want IDLE", session.State)
	}
	if reply != "Database Error. Please try again." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestConfirmNoCancelsDraft(t *testing.T) {
	svc, ledger, _, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateConfirm
	session.Draft.Location = "coorg"

	reply := process(t, svc, session, "no thanks")
	if ledger.created != 0 {
		t.Fatal("ledger touched on decline")
	}
	if session.State != models.StateIdle {
		t.Fatalf("state %s, want IDLE", session.State)
	}
	if reply != "Booking Cancelled." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func verifiedFixture() *models.VerifiedBooking {
	return &models.VerifiedBooking{
		Booking: models.Booking{
			ID:          7,
			ServiceType: "coorg | Module A: Riverside Camping",
			Location:    "coorg",
			ModuleName:  "Module A: Riverside Camping",
			BookingDate: "2026-01-09 to 2026-01-10",
			GuestCount:  2,
			Status:      models.StatusConfirmed,
		},
		Name:  "Jane Roe",
		Email: "jane@example.com",
		Phone: "9876543210",
	}
}

func TestInvoiceBranchesOnIntent(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	for intent, wantState := range map[string]models.ConversationState{
		models.IntentCancel: models.StateConfirmCancel,
		models.IntentUpdate: models.StateAskUpdateDetails,
	} {
		session := models.NewSession("s1")
		session.State = models.StateWaitingForInvoice
		session.Draft.Intent = intent
		session.Draft.VerifiedBooking = verifiedFixture()

		reply := process(t, svc, session, models.EventInvoiceVerified)
		if session.State != wantState {
			t.Errorf("intent %s: state %s, want %s", intent, session.State, wantState)
		}
		if !strings.Contains(reply, "Found Booking #7") {
			t.Errorf("intent %s: reply %q missing booking summary", intent, reply)
		}
	}
}

func TestInvoiceRePromptsWithoutSentinel(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateWaitingForInvoice
	session.Draft.Intent = models.IntentCancel

	reply := process(t, svc, session, "here you go")
	if session.State != models.StateWaitingForInvoice {
		t.Fatalf("state %s, want unchanged", session.State)
	}
	if !strings.Contains(reply, "upload") {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestCancelSendsEmailBeforeDelete(t *testing.T) {
	svc, ledger, notifier, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateConfirmCancel
	session.Draft.VerifiedBooking = verifiedFixture()

	reply := process(t, svc, session, "yes")
	if notifier.cancels != 1 {
		t.Fatalf("sent %d cancellation emails, want 1", notifier.cancels)
	}
	if len(ledger.deleted) != 1 || ledger.deleted[0] != 7 {
		t.Fatalf("deleted %v, want [7]", ledger.deleted)
	}
	if session.State != models.StateIdle {
		t.Fatalf("state %s, want IDLE", session.State)
	}
	if !strings.Contains(reply, "Booking #7 has been removed") {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestCancelKeepsLedgerWhenEmailFails(t *testing.T) {
	svc, ledger, notifier, _ := newTestService(t)
	notifier.cancelOK = false

	session := models.NewSession("s1")
	session.State = models.StateConfirmCancel
	session.Draft.VerifiedBooking = verifiedFixture()

	reply := process(t, svc, session, "yes")
	if len(ledger.deleted) != 0 {
		t.Fatalf("ledger mutated despite failed email: %v", ledger.deleted)
	}
	if session.State != models.StateConfirmCancel {
		t.Fatalf("state %s, want unchanged CONFIRM_CANCEL", session.State)
	}
	if !strings.Contains(reply, "Database NOT updated") {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestCancelDeclineNeverTouchesLedger(t *testing.T) {
	svc, ledger, notifier, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateConfirmCancel
	session.Draft.VerifiedBooking = verifiedFixture()

	reply := process(t, svc, session, "no")
	if notifier.cancels != 0 || len(ledger.deleted) != 0 {
		t.Fatal("collaborators called on decline")
	}
	if session.State != models.StateIdle {
		t.Fatalf("state %s, want IDLE", session.State)
	}
	if reply != "Cancellation aborted. Your booking remains active." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestUpdateStagesGuestsAndConfirms(t *testing.T) {
	svc, ledger, notifier, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateAskUpdateDetails
	session.Draft.VerifiedBooking = verifiedFixture()

	reply := process(t, svc, session, "change guests to 5")
	if session.Draft.NewGuests != 5 {
		t.Fatalf("staged guests %d, want 5", session.Draft.NewGuests)
	}
	if session.State != models.StateAskUpdateDetails {
		t.Fatalf("state %s, want unchanged", session.State)
	}
	if !strings.Contains(reply, "5 guests") {
		t.Errorf("unexpected reply %q", reply)
	}

	reply = process(t, svc, session, "done")
	if session.State != models.StateConfirmUpdate {
		t.Fatalf("state %s, want CONFIRM_UPDATE", session.State)
	}
	// Date falls back to the original in the summary.
	if !strings.Contains(reply, "2026-01-09 to 2026-01-10") {
		t.Errorf("summary %q missing original date", reply)
	}

	process(t, svc, session, "confirm")
	if len(ledger.updated) != 1 {
		t.Fatalf("updates %v, want exactly one", ledger.updated)
	}
	up := ledger.updated[0]
	if up.id != 7 || up.guests != 5 || up.date != "2026-01-09 to 2026-01-10" {
		t.Fatalf("update call %+v has wrong values", up)
	}
	if len(notifier.updates) != 1 {
		t.Fatalf("sent %d update emails, want 1", len(notifier.updates))
	}
	if session.State != models.StateIdle {
		t.Fatalf("state %s, want IDLE", session.State)
	}
}

func TestUpdateOffersDatesOnAvailabilityQuestion(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateAskUpdateDetails
	session.Draft.VerifiedBooking = verifiedFixture()

	process(t, svc, session, "what dates are available?")
	if session.State != models.StateWaitingForUpdateSelection {
		t.Fatalf("state %s, want WAITING_FOR_UPDATE_SELECTION", session.State)
	}
	if len(session.SelectionRows) == 0 {
		t.Fatal("no rows offered")
	}

	session.Draft.NewDate = session.SelectionRows[0].RawDate
	reply := process(t, svc, session, models.EventUpdateSelected)
	if session.State != models.StateAskUpdateDetails {
		t.Fatalf("state %s, want ASK_UPDATE_DETAILS", session.State)
	}
	if !strings.Contains(reply, session.Draft.NewDate) {
		t.Errorf("reply %q missing selected date", reply)
	}
}

func TestUpdateUnrecognisedChange(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateAskUpdateDetails
	session.Draft.VerifiedBooking = verifiedFixture()

	reply := process(t, svc, session, "make it better please")
	if session.State != models.StateAskUpdateDetails {
		t.Fatalf("state %s, want unchanged", session.State)
	}
	if !strings.Contains(reply, "didn't catch a change") {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestUpdateDatabaseFailureKeepsState(t *testing.T) {
	svc, ledger, notifier, _ := newTestService(t)
	ledger.updateErr = errors.New("down")

	session := models.NewSession("s1")
	session.State = models.StateConfirmUpdate
	session.Draft.VerifiedBooking = verifiedFixture()
	session.Draft.NewGuests = 5

	reply := process(t, svc, session, "confirm")
	if session.State != models.StateConfirmUpdate {
		t.Fatalf("state %s, want unchanged CONFIRM_UPDATE", session.State)
	}
	if len(notifier.updates) != 0 {
		t.Fatal("email sent despite failed update")
	}
	if reply != "Database Error. Update failed." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestUpdateEmailFailureStillCompletes(t *testing.T) {
	svc, ledger, notifier, _ := newTestService(t)
	notifier.updateOK = false

	session := models.NewSession("s1")
	session.State = models.StateConfirmUpdate
	session.Draft.VerifiedBooking = verifiedFixture()
	session.Draft.NewDate = "2026-01-16"

	reply := process(t, svc, session, "yes")
	if len(ledger.updated) != 1 {
		t.Fatalf("updates %v, want exactly one", ledger.updated)
	}
	if session.State != models.StateIdle {
		t.Fatalf("state %s, want IDLE", session.State)
	}
	if !strings.Contains(reply, "Update Complete!") {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestUpdateAbort(t *testing.T) {
	svc, ledger, _, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateConfirmUpdate
	session.Draft.VerifiedBooking = verifiedFixture()
	session.Draft.NewGuests = 5

	reply := process(t, svc, session, "actually never mind")
	if len(ledger.updated) != 0 {
		t.Fatal("ledger touched on abort")
	}
	if session.State != models.StateIdle {
		t.Fatalf("state %s, want IDLE", session.State)
	}
	if reply != "Update Cancelled. Keeping original details." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestIdleIntentStaging(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	session := models.NewSession("s1")
	process(t, svc, session, "I need to cancel my trip")
	if session.State != models.StateWaitingForInvoice || session.Draft.Intent != models.IntentCancel {
		t.Fatalf("cancel: state %s intent %q", session.State, session.Draft.Intent)
	}

	session = models.NewSession("s2")
	process(t, svc, session, "I want to change my booking date")
	if session.State != models.StateWaitingForInvoice || session.Draft.Intent != models.IntentUpdate {
		t.Fatalf("update: state %s intent %q", session.State, session.Draft.Intent)
	}
}

func TestBookingFallsBackToHistory(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	session := models.NewSession("s1")
	session.Append(models.RoleUser, "tell me about wayanad")
	session.Append(models.RoleAssistant, "Wayanad offers trekking and treehouse stays.")

	process(t, svc, session, "ok book it")
	if session.Draft.Location != "wayanad" {
		t.Fatalf("location %q, want wayanad from history", session.Draft.Location)
	}
	if session.State != models.StateWaitingForSelection {
		t.Fatalf("state %s, want WAITING_FOR_SELECTION", session.State)
	}
}

func TestBookingWithoutLocationUnclaimed(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	session := models.NewSession("s1")

	if _, claimed := svc.Process(context.Background(), session, "book something fun"); claimed {
		t.Fatal("booking with no location signal should fall through")
	}
	if session.State != models.StateIdle {
		t.Fatalf("state %s, want IDLE", session.State)
	}
}

func TestVerifySelectionDecline(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateVerifySelection
	session.Draft.Location = "coorg"
	session.Draft.ModuleKey = "module_a"

	process(t, svc, session, "wrong one")
	if session.State != models.StateIdle {
		t.Fatalf("state %s, want IDLE after decline", session.State)
	}
	if session.Draft.Location != "" {
		t.Fatal("draft not cleared")
	}
}

func TestCheckDateIsDeadEnd(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	session := models.NewSession("s1")
	session.State = models.StateCheckDate

	if _, claimed := svc.Process(context.Background(), session, "next friday maybe"); claimed {
		t.Fatal("CHECK_DATE input should fall through to the knowledge answerer")
	}
	if session.State != models.StateCheckDate {
		t.Fatalf("state %s, want unchanged", session.State)
	}
}
