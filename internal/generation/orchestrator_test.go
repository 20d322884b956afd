package generation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"genboard/internal/domain"
	"genboard/internal/providers/fal"
)

type fakeContents struct {
	mu                sync.Mutex
	records           map[string]*domain.Content
	heartbeats        int
	markGeneratingErr error
}

func newFakeContents() *fakeContents {
	return &fakeContents{records: map[string]*domain.Content{}}
}

func (f *fakeContents) Create(ctx context.Context, content *domain.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *content
	clone.Status = domain.ContentStatusPending
	f.records[content.ID] = &clone
	return nil
}

func (f *fakeContents) GetByID(ctx context.Context, contentID string) (*domain.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[contentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (f *fakeContents) GetForUser(ctx context.Context, contentID, userID string) (*domain.Content, error) {
	record, err := f.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (f *fakeContents) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []domain.Content
	for _, record := range f.records {
		if record.UserID == userID {
			items = append(items, *record)
		}
	}
	return items, nil
}

func (f *fakeContents) MarkGenerating(ctx context.Context, contentID, providerRequestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markGeneratingErr != nil {
		return f.markGeneratingErr
	}
	record, ok := f.records[contentID]
	if !ok || record.Status != domain.ContentStatusPending {
		return fmt.Errorf("%w: content %s is not pending", domain.ErrNotFound, contentID)
	}
	record.Status = domain.ContentStatusGenerating
	record.ProviderRequestID = providerRequestID
	return nil
}

func (f *fakeContents) Heartbeat(ctx context.Context, contentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[contentID]
	if !ok || record.Status != domain.ContentStatusGenerating {
		return fmt.Errorf("%w: content %s is not generating", domain.ErrNotFound, contentID)
	}
	f.heartbeats++
	return nil
}

func (f *fakeContents) MarkCompleted(ctx context.Context, contentID, mediaURL, thumbnailURL string, metadata map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[contentID]
	if !ok || record.Status != domain.ContentStatusGenerating {
		return fmt.Errorf("%w: content %s is not generating", domain.ErrNotFound, contentID)
	}
	record.Status = domain.ContentStatusCompleted
	record.MediaURL = mediaURL
	record.ThumbnailURL = thumbnailURL
	record.Metadata = metadata
	return nil
}

func (f *fakeContents) MarkFailed(ctx context.Context, contentID, errorMessage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[contentID]
	if !ok || record.Status.Terminal() {
		return fmt.Errorf("%w: content %s is already terminal", domain.ErrNotFound, contentID)
	}
	record.Status = domain.ContentStatusFailed
	record.ErrorMessage = errorMessage
	return nil
}

type fakeLedger struct {
	mu       sync.Mutex
	balances map[string]int
	debits   map[string]domain.CreditTransaction
	debitErr error
}

func newFakeLedger(balances map[string]int) *fakeLedger {
	return &fakeLedger{balances: balances, debits: map[string]domain.CreditTransaction{}}
}

func (f *fakeLedger) Balance(ctx context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	balance, ok := f.balances[userID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return balance, nil
}

func (f *fakeLedger) Debit(ctx context.Context, userID string, amount int, description, contentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.debitErr != nil {
		return false, f.debitErr
	}
	if _, exists := f.debits[contentID]; exists {
		return false, nil
	}
	f.debits[contentID] = domain.CreditTransaction{
		UserID:      userID,
		ContentID:   contentID,
		Amount:      amount,
		Description: description,
	}
	f.balances[userID] -= amount
	return true, nil
}

func (f *fakeLedger) ListTransactions(ctx context.Context, userID string, limit int) ([]domain.CreditTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []domain.CreditTransaction
	for _, tx := range f.debits {
		if tx.UserID == userID {
			items = append(items, tx)
		}
	}
	return items, nil
}

func (f *fakeLedger) debitCount(contentID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.debits[contentID]; ok {
		return 1
	}
	return 0
}

type fakeCredentials struct {
	key string
	err error
}

func (f *fakeCredentials) ProviderKey(ctx context.Context, provider string) (string, error) {
	return f.key, f.err
}

// fakeQueue scripts poll outcomes: one PollResult per attempt, with the last
// entry repeated once the script runs out.
type fakeQueue struct {
	mu        sync.Mutex
	submitErr error
	requestID string
	submits   int
	script    []fal.PollResult
	polls     int
}

func (f *fakeQueue) Submit(ctx context.Context, apiKey string, job fal.SubmitJob) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++
	if f.submitErr != nil {
		return "", f.submitErr
	}
	if f.requestID == "" {
		return "req-1", nil
	}
	return f.requestID, nil
}

func (f *fakeQueue) Poll(ctx context.Context, apiKey, endpoint, requestID string) (fal.PollResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	if len(f.script) == 0 {
		return fal.PollResult{State: fal.PollInProgress}, nil
	}
	idx := f.polls - 1
	if idx >= len(f.script) {
		idx = len(f.script) - 1
	}
	return f.script[idx], nil
}

func (f *fakeQueue) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submits
}

type fakeJournal struct {
	mu      sync.Mutex
	records []string
}

func (f *fakeJournal) RecordUnbilled(ctx context.Context, tx domain.CreditTransaction, cause string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, tx.ContentID)
	return nil
}

type fixture struct {
	contents *fakeContents
	ledger   *fakeLedger
	queue    *fakeQueue
	journal  *fakeJournal
	orch     *Orchestrator
}

func newFixture(t *testing.T, balances map[string]int, queue *fakeQueue) *fixture {
	t.Helper()
	contents := newFakeContents()
	ledger := newFakeLedger(balances)
	journal := &fakeJournal{}
	orch := New(Options{
		Contents:     contents,
		Ledger:       ledger,
		Credentials:  &fakeCredentials{key: "test-key"},
		Queue:        queue,
		Journal:      journal,
		Logger:       zerolog.Nop(),
		PollInterval: time.Millisecond,
		PollAttempts: 5,
	})
	return &fixture{contents: contents, ledger: ledger, queue: queue, journal: journal, orch: orch}
}

func imageContent(id string) *domain.Content {
	return &domain.Content{
		ID:     id,
		UserID: "user-1",
		Kind:   domain.ContentKindImage,
		Mode:   domain.ModeTextToMedia,
		Prompt: "a lighthouse at dawn",
	}
}

func completedImageResult(url string) fal.PollResult {
	return fal.PollResult{
		State:  fal.PollCompleted,
		Result: &fal.Result{Images: []fal.MediaFile{{URL: url, ThumbnailURL: url + "?thumb"}}},
	}
}

func TestGenerateSuccessSettlesOnce(t *testing.T) {
	queue := &fakeQueue{script: []fal.PollResult{completedImageResult("https://cdn.example.com/out.png")}}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)

	content := imageContent("content-1")
	if err := fx.orch.Generate(context.Background(), content); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	fx.orch.Wait()

	record, err := fx.contents.GetByID(context.Background(), "content-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if record.Status != domain.ContentStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", record.Status)
	}
	if record.MediaURL != "https://cdn.example.com/out.png" {
		t.Fatalf("unexpected media url %q", record.MediaURL)
	}
	if got := fx.ledger.debitCount("content-1"); got != 1 {
		t.Fatalf("expected exactly one debit, got %d", got)
	}
	if fx.ledger.balances["user-1"] != 4 {
		t.Fatalf("expected balance 4, got %d", fx.ledger.balances["user-1"])
	}
}

func TestGenerateRejectsMissingSeedImageBeforeSubmit(t *testing.T) {
	queue := &fakeQueue{}
	fx := newFixture(t, map[string]int{"user-1": 100}, queue)

	content := &domain.Content{
		ID:     "content-2",
		UserID: "user-1",
		Kind:   domain.ContentKindVideo,
		Mode:   domain.ModeImageToVideo,
		Prompt: "pan across the harbor",
	}
	err := fx.orch.Generate(context.Background(), content)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if queue.submitCount() != 0 {
		t.Fatal("submit must not be called for invalid requests")
	}
	if _, err := fx.contents.GetByID(context.Background(), "content-2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatal("invalid request must not persist a record")
	}
}

func TestGenerateInsufficientCredit(t *testing.T) {
	queue := &fakeQueue{}
	fx := newFixture(t, map[string]int{"user-1": 3}, queue)

	content := &domain.Content{
		ID:          "content-3",
		UserID:      "user-1",
		Kind:        domain.ContentKindVideo,
		Mode:        domain.ModeTextToMedia,
		Prompt:      "storm over the bay",
		InputImages: nil,
	}
	err := fx.orch.Generate(context.Background(), content)
	ice, ok := domain.IsInsufficientCredit(err)
	if !ok {
		t.Fatalf("expected insufficient credit, got %v", err)
	}
	if ice.Required != 10 || ice.Available != 3 {
		t.Fatalf("unexpected amounts: %+v", ice)
	}
	if queue.submitCount() != 0 {
		t.Fatal("submit must not be called when balance is short")
	}
	record, err := fx.contents.GetByID(context.Background(), "content-3")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if record.Status != domain.ContentStatusPending {
		t.Fatalf("expected record to stay PENDING, got %s", record.Status)
	}
}

func TestGenerateConfigurationErrorLeavesRecordPending(t *testing.T) {
	queue := &fakeQueue{}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)
	fx.orch.creds = &fakeCredentials{err: fmt.Errorf("%w: no owner principal exists", domain.ErrConfiguration)}

	err := fx.orch.Generate(context.Background(), imageContent("content-4"))
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if queue.submitCount() != 0 {
		t.Fatal("submit must not be called without a credential")
	}
	record, _ := fx.contents.GetByID(context.Background(), "content-4")
	if record.Status != domain.ContentStatusPending {
		t.Fatalf("expected PENDING, got %s", record.Status)
	}
}

func TestGenerateSubmitFailureMarksFailedWithoutCharge(t *testing.T) {
	queue := &fakeQueue{submitErr: fmt.Errorf("%w: endpoint returned 503", domain.ErrProviderSubmission)}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)

	err := fx.orch.Generate(context.Background(), imageContent("content-5"))
	if !errors.Is(err, domain.ErrProviderSubmission) {
		t.Fatalf("expected submission error, got %v", err)
	}
	record, _ := fx.contents.GetByID(context.Background(), "content-5")
	if record.Status != domain.ContentStatusFailed {
		t.Fatalf("expected FAILED, got %s", record.Status)
	}
	if record.ErrorMessage == "" {
		t.Fatal("expected error message on failed record")
	}
	if got := fx.ledger.debitCount("content-5"); got != 0 {
		t.Fatalf("expected zero debits, got %d", got)
	}
}

func TestPollProviderFailureShortCircuits(t *testing.T) {
	queue := &fakeQueue{script: []fal.PollResult{
		{State: fal.PollInProgress},
		{State: fal.PollInProgress},
		{State: fal.PollFailed, ErrorDetail: "nsfw filter triggered"},
	}}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)

	if err := fx.orch.Generate(context.Background(), imageContent("content-6")); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	fx.orch.Wait()

	record, _ := fx.contents.GetByID(context.Background(), "content-6")
	if record.Status != domain.ContentStatusFailed {
		t.Fatalf("expected FAILED, got %s", record.Status)
	}
	if record.ErrorMessage == "" {
		t.Fatal("expected error message")
	}
	if got := fx.ledger.debitCount("content-6"); got != 0 {
		t.Fatalf("expected zero debits, got %d", got)
	}
	if queue.polls >= 5 {
		t.Fatalf("expected early exit, polled %d times", queue.polls)
	}
}

func TestPollBudgetExhaustionTimesOut(t *testing.T) {
	queue := &fakeQueue{script: []fal.PollResult{{State: fal.PollInProgress}}}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)

	if err := fx.orch.Generate(context.Background(), imageContent("content-7")); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	fx.orch.Wait()

	record, _ := fx.contents.GetByID(context.Background(), "content-7")
	if record.Status != domain.ContentStatusFailed {
		t.Fatalf("expected FAILED, got %s", record.Status)
	}
	if record.ErrorMessage != "generation timed out after 5 attempts" {
		t.Fatalf("unexpected message %q", record.ErrorMessage)
	}
	if queue.polls != 5 {
		t.Fatalf("expected exactly 5 polls, got %d", queue.polls)
	}
	if got := fx.ledger.debitCount("content-7"); got != 0 {
		t.Fatalf("expected zero debits, got %d", got)
	}
}

func TestPollMissingMediaURLIsNotBilled(t *testing.T) {
	queue := &fakeQueue{script: []fal.PollResult{{State: fal.PollCompleted, Result: &fal.Result{}}}}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)

	if err := fx.orch.Generate(context.Background(), imageContent("content-8")); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	fx.orch.Wait()

	record, _ := fx.contents.GetByID(context.Background(), "content-8")
	if record.Status != domain.ContentStatusFailed {
		t.Fatalf("expected FAILED, got %s", record.Status)
	}
	if got := fx.ledger.debitCount("content-8"); got != 0 {
		t.Fatalf("expected zero debits, got %d", got)
	}
}

func TestPollNotFoundRetriesSilently(t *testing.T) {
	queue := &fakeQueue{script: []fal.PollResult{
		{State: fal.PollNotFound},
		{State: fal.PollNotFound},
		completedImageResult("https://cdn.example.com/late.png"),
	}}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)

	if err := fx.orch.Generate(context.Background(), imageContent("content-9")); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	fx.orch.Wait()

	record, _ := fx.contents.GetByID(context.Background(), "content-9")
	if record.Status != domain.ContentStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", record.Status)
	}
}

func TestSettlementFailureStillCompletesAndJournals(t *testing.T) {
	queue := &fakeQueue{script: []fal.PollResult{completedImageResult("https://cdn.example.com/out.png")}}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)
	fx.ledger.debitErr = errors.New("ledger unavailable")

	if err := fx.orch.Generate(context.Background(), imageContent("content-10")); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	fx.orch.Wait()

	record, _ := fx.contents.GetByID(context.Background(), "content-10")
	if record.Status != domain.ContentStatusCompleted {
		t.Fatalf("billing failure must not fail the content, got %s", record.Status)
	}
	if len(fx.journal.records) != 1 || fx.journal.records[0] != "content-10" {
		t.Fatalf("expected unbilled journal record, got %v", fx.journal.records)
	}
}

func TestSettlementIsIdempotent(t *testing.T) {
	queue := &fakeQueue{script: []fal.PollResult{completedImageResult("https://cdn.example.com/out.png")}}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)

	content := imageContent("content-11")
	if err := fx.orch.Generate(context.Background(), content); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	fx.orch.Wait()

	// A second settle for the same content id must be a no-op.
	fx.orch.settle(context.Background(), content, domain.CreditCostImage, zerolog.Nop())
	if fx.ledger.balances["user-1"] != 4 {
		t.Fatalf("expected balance 4 after duplicate settle, got %d", fx.ledger.balances["user-1"])
	}
}

func TestResumeContinuesOrphanedSession(t *testing.T) {
	queue := &fakeQueue{script: []fal.PollResult{completedImageResult("https://cdn.example.com/out.png")}}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)

	content := imageContent("content-12")
	if err := fx.contents.Create(context.Background(), content); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := fx.contents.MarkGenerating(context.Background(), content.ID, "req-orphan"); err != nil {
		t.Fatalf("MarkGenerating error: %v", err)
	}
	content.Status = domain.ContentStatusGenerating
	content.ProviderRequestID = "req-orphan"

	if err := fx.orch.Resume(context.Background(), content); err != nil {
		t.Fatalf("Resume error: %v", err)
	}

	record, _ := fx.contents.GetByID(context.Background(), content.ID)
	if record.Status != domain.ContentStatusCompleted {
		t.Fatalf("expected COMPLETED after resume, got %s", record.Status)
	}
	if got := fx.ledger.debitCount(content.ID); got != 1 {
		t.Fatalf("expected one debit after resume, got %d", got)
	}
}

// Two polling sessions over the same row: the sweep can start a second
// session if the first looks dead. Whichever session reaches a terminal state
// first wins; the loser must not bill. A FAILED record with a settlement
// transaction is the one outcome that must never exist.
func TestOverlappingSessionsNeverBillAFailedRecord(t *testing.T) {
	fx := newFixture(t, map[string]int{"user-1": 5}, &fakeQueue{})

	content := imageContent("content-14")
	if err := fx.contents.Create(context.Background(), content); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := fx.contents.MarkGenerating(context.Background(), content.ID, "req-shared"); err != nil {
		t.Fatalf("MarkGenerating error: %v", err)
	}
	content.Status = domain.ContentStatusGenerating
	content.ProviderRequestID = "req-shared"

	// First session exhausts its budget and marks the row FAILED.
	first := *content
	fx.orch.queue = &fakeQueue{script: []fal.PollResult{{State: fal.PollInProgress}}}
	fx.orch.PollToTerminal(context.Background(), "test-key", &first, "fal-ai/imagen4")

	record, _ := fx.contents.GetByID(context.Background(), content.ID)
	if record.Status != domain.ContentStatusFailed {
		t.Fatalf("expected FAILED after timeout, got %s", record.Status)
	}

	// A second session for the same request id then sees a 200. The row is
	// already terminal, so nothing may change and nothing may be billed.
	second := *content
	fx.orch.queue = &fakeQueue{script: []fal.PollResult{completedImageResult("https://cdn.example.com/late.png")}}
	fx.orch.PollToTerminal(context.Background(), "test-key", &second, "fal-ai/imagen4")

	record, _ = fx.contents.GetByID(context.Background(), content.ID)
	if record.Status != domain.ContentStatusFailed {
		t.Fatalf("terminal state must not change, got %s", record.Status)
	}
	if got := fx.ledger.debitCount(content.ID); got != 0 {
		t.Fatalf("a failed record must carry zero debits, got %d", got)
	}
	if fx.ledger.balances["user-1"] != 5 {
		t.Fatalf("balance must be untouched, got %d", fx.ledger.balances["user-1"])
	}
}

// A session whose row was taken terminal elsewhere learns it from the
// heartbeat and stops instead of burning its whole poll budget.
func TestSupersededSessionStopsOnHeartbeat(t *testing.T) {
	queue := &fakeQueue{script: []fal.PollResult{{State: fal.PollInProgress}}}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)

	content := imageContent("content-15")
	if err := fx.contents.Create(context.Background(), content); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := fx.contents.MarkGenerating(context.Background(), content.ID, "req-1"); err != nil {
		t.Fatalf("MarkGenerating error: %v", err)
	}
	if err := fx.contents.MarkFailed(context.Background(), content.ID, "taken terminal elsewhere"); err != nil {
		t.Fatalf("MarkFailed error: %v", err)
	}
	content.Status = domain.ContentStatusGenerating
	content.ProviderRequestID = "req-1"

	fx.orch.PollToTerminal(context.Background(), "test-key", content, "fal-ai/imagen4")

	if queue.polls != 1 {
		t.Fatalf("expected the session to stop after one poll, got %d", queue.polls)
	}
	record, _ := fx.contents.GetByID(context.Background(), content.ID)
	if record.ErrorMessage != "taken terminal elsewhere" {
		t.Fatalf("superseded session must not overwrite the record, got %q", record.ErrorMessage)
	}
	if got := fx.ledger.debitCount(content.ID); got != 0 {
		t.Fatalf("expected zero debits, got %d", got)
	}
}

func TestLiveSessionHeartbeatsEveryAttempt(t *testing.T) {
	queue := &fakeQueue{script: []fal.PollResult{
		{State: fal.PollInProgress},
		{State: fal.PollInProgress},
		completedImageResult("https://cdn.example.com/out.png"),
	}}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)

	if err := fx.orch.Generate(context.Background(), imageContent("content-16")); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	fx.orch.Wait()

	// One heartbeat per non-terminal attempt; the completing attempt returns
	// before touching the row.
	if fx.contents.heartbeats != 2 {
		t.Fatalf("expected 2 heartbeats, got %d", fx.contents.heartbeats)
	}
}

func TestGenerateTrackingFailureClosesRecord(t *testing.T) {
	queue := &fakeQueue{}
	fx := newFixture(t, map[string]int{"user-1": 5}, queue)
	fx.contents.markGeneratingErr = errors.New("connection reset")

	content := imageContent("content-17")
	err := fx.orch.Generate(context.Background(), content)
	if err == nil {
		t.Fatal("expected error when tracking cannot be recorded")
	}
	record, _ := fx.contents.GetByID(context.Background(), content.ID)
	if record.Status != domain.ContentStatusFailed {
		t.Fatalf("expected FAILED, got %s", record.Status)
	}
	if record.ErrorMessage == "" {
		t.Fatal("expected error message naming the lost submission")
	}
	if got := fx.ledger.debitCount(content.ID); got != 0 {
		t.Fatalf("expected zero debits, got %d", got)
	}
}

func TestResumeRequiresRequestID(t *testing.T) {
	fx := newFixture(t, map[string]int{"user-1": 5}, &fakeQueue{})
	content := imageContent("content-13")
	if err := fx.orch.Resume(context.Background(), content); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
