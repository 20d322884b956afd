package generation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"genboard/internal/domain"
	"genboard/internal/infra"
	"genboard/internal/infra/credentials"
	"genboard/internal/providers/fal"
)

const (
	// DefaultPollInterval and DefaultPollAttempts bound a polling session to
	// roughly ten minutes of wall clock.
	DefaultPollInterval = 2 * time.Second
	DefaultPollAttempts = 300
)

// QueueClient is the provider queue surface the orchestrator depends on.
type QueueClient interface {
	Submit(ctx context.Context, apiKey string, job fal.SubmitJob) (string, error)
	Poll(ctx context.Context, apiKey, endpoint, requestID string) (fal.PollResult, error)
}

// SettlementJournal records successful generations that could not be billed,
// for later reconciliation.
type SettlementJournal interface {
	RecordUnbilled(ctx context.Context, tx domain.CreditTransaction, cause string) error
}

// Orchestrator coordinates one generation request across the database, the
// provider queue and the credit ledger. The controlling invariant: a failed
// generation never costs the user credits, a successful one costs exactly once.
type Orchestrator struct {
	contents domain.ContentRepository
	ledger   domain.CreditLedger
	creds    domain.CredentialResolver
	queue    QueueClient
	journal  SettlementJournal
	logger   infra.Logger

	interval time.Duration
	attempts int
	// apiKeyOverride bypasses the credential store when set (development).
	apiKeyOverride string

	// baseCtx scopes background pollers to the process, not to the HTTP
	// request that spawned them.
	baseCtx context.Context
	wg      sync.WaitGroup
}

// Options configures an Orchestrator.
type Options struct {
	Contents       domain.ContentRepository
	Ledger         domain.CreditLedger
	Credentials    domain.CredentialResolver
	Queue          QueueClient
	Journal        SettlementJournal
	Logger         infra.Logger
	PollInterval   time.Duration
	PollAttempts   int
	APIKeyOverride string
	BaseContext    context.Context
}

// New constructs an Orchestrator.
func New(opts Options) *Orchestrator {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	attempts := opts.PollAttempts
	if attempts <= 0 {
		attempts = DefaultPollAttempts
	}
	baseCtx := opts.BaseContext
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Orchestrator{
		contents:       opts.Contents,
		ledger:         opts.Ledger,
		creds:          opts.Credentials,
		queue:          opts.Queue,
		journal:        opts.Journal,
		logger:         opts.Logger,
		interval:       interval,
		attempts:       attempts,
		apiKeyOverride: opts.APIKeyOverride,
		baseCtx:        baseCtx,
	}
}

// Wait blocks until all background pollers have finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Generate runs the synchronous half of the pipeline: validate, persist the
// PENDING record, resolve the shared credential, check entitlement, submit to
// the provider queue and hand the request id to a background poller. It
// returns as soon as the job is accepted; completion is observed through the
// content record.
func (o *Orchestrator) Generate(ctx context.Context, content *domain.Content) error {
	if err := content.Validate(); err != nil {
		return err
	}
	job, err := fal.BuildJob(content)
	if err != nil {
		return err
	}

	content.Status = domain.ContentStatusPending
	if err := o.contents.Create(ctx, content); err != nil {
		return fmt.Errorf("create content record: %w", err)
	}

	apiKey, err := o.apiKey(ctx)
	if err != nil {
		// Operator problem: no owner or no credential. The record stays
		// PENDING; nothing was submitted, nothing will be billed.
		return err
	}

	cost := domain.CreditCost(content.Kind)
	balance, err := o.ledger.Balance(ctx, content.UserID)
	if err != nil {
		return fmt.Errorf("read balance: %w", err)
	}
	if balance < cost {
		return &domain.InsufficientCreditError{Required: cost, Available: balance}
	}

	requestID, err := o.queue.Submit(ctx, apiKey, job)
	if err != nil {
		if markErr := o.contents.MarkFailed(ctx, content.ID, err.Error()); markErr != nil {
			o.logger.Error().Err(markErr).Str("content_id", content.ID).Msg("generation: mark failed after submit error")
		}
		return err
	}

	if err := o.contents.MarkGenerating(ctx, content.ID, requestID); err != nil {
		// The provider job is already running but the row never records its
		// request id, so no session (and no sweep) can ever observe the
		// outcome. Close the record out instead of leaving it PENDING
		// forever; nothing has been billed.
		msg := fmt.Sprintf("submitted as %s but tracking could not be recorded", requestID)
		if markErr := o.contents.MarkFailed(ctx, content.ID, msg); markErr != nil {
			o.logger.Error().Err(markErr).Str("content_id", content.ID).Msg("generation: mark failed after tracking error")
		}
		return fmt.Errorf("mark generating: %w", err)
	}
	content.Status = domain.ContentStatusGenerating
	content.ProviderRequestID = requestID

	o.logger.Info().
		Str("content_id", content.ID).
		Str("request_id", requestID).
		Str("endpoint", job.Endpoint).
		Msg("generation: submitted")

	snapshot := *content
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.PollToTerminal(o.baseCtx, apiKey, &snapshot, job.Endpoint)
	}()
	return nil
}

// Resume continues an interrupted polling session for a GENERATING record
// whose provider request id was persisted at submission time. The recovery
// sweep calls this synchronously.
func (o *Orchestrator) Resume(ctx context.Context, content *domain.Content) error {
	if content.ProviderRequestID == "" {
		return fmt.Errorf("%w: content %s has no provider request id", domain.ErrValidation, content.ID)
	}
	endpoint, err := fal.Endpoint(content.Kind, content.Mode)
	if err != nil {
		return err
	}
	apiKey, err := o.apiKey(ctx)
	if err != nil {
		return err
	}
	o.PollToTerminal(ctx, apiKey, content, endpoint)
	return nil
}

func (o *Orchestrator) apiKey(ctx context.Context) (string, error) {
	if o.apiKeyOverride != "" {
		return o.apiKeyOverride, nil
	}
	return o.creds.ProviderKey(ctx, credentials.ProviderFal)
}
