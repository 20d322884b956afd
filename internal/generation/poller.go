package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"genboard/internal/domain"
	"genboard/internal/infra"
	"genboard/internal/providers/fal"
)

// PollToTerminal drives one polling session to a terminal outcome. It issues
// at most o.attempts status queries at a fixed interval, then records the
// result on the content record. The settlement engine runs only on the
// confirmed-success branch; every other exit leaves the ledger untouched.
func (o *Orchestrator) PollToTerminal(ctx context.Context, apiKey string, content *domain.Content, endpoint string) {
	log := o.logger.With().
		Str("content_id", content.ID).
		Str("request_id", content.ProviderRequestID).
		Logger()

	for attempt := 1; attempt <= o.attempts; attempt++ {
		res, err := o.queue.Poll(ctx, apiKey, endpoint, content.ProviderRequestID)
		if err != nil {
			if ctx.Err() != nil {
				// Process shutdown: leave the record GENERATING so the
				// recovery sweep can resume it.
				log.Warn().Msg("generation: poll interrupted by shutdown")
				return
			}
			if errors.Is(err, domain.ErrProviderProtocol) {
				o.fail(ctx, content.ID, fmt.Sprintf("provider returned an unreadable result: %v", err), log)
				return
			}
			log.Warn().Err(err).Int("attempt", attempt).Msg("generation: poll attempt failed")
		} else {
			switch res.State {
			case fal.PollCompleted:
				media, ok := res.Result.Media(content.Kind)
				if !ok {
					o.fail(ctx, content.ID, "provider result is missing a media url", log)
					return
				}
				o.complete(ctx, content, media, log)
				return
			case fal.PollFailed:
				o.fail(ctx, content.ID, fmt.Sprintf("generation failed: %s", res.ErrorDetail), log)
				return
			case fal.PollInProgress, fal.PollNotFound, fal.PollTransient:
				// Keep waiting.
			}
		}

		// Keep updated_at fresh so the recovery sweep does not treat this
		// session as dead and start a competing one. Losing the row here
		// means another session already drove it to a terminal state.
		if err := o.contents.Heartbeat(ctx, content.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Info().Msg("generation: session superseded, stopping")
				return
			}
			log.Warn().Err(err).Msg("generation: heartbeat failed")
		}

		if attempt == o.attempts {
			break
		}
		select {
		case <-ctx.Done():
			log.Warn().Msg("generation: poll interrupted by shutdown")
			return
		case <-time.After(o.interval):
		}
	}

	o.fail(ctx, content.ID, fmt.Sprintf("generation timed out after %d attempts", o.attempts), log)
}

// complete marks the record COMPLETED and settles the user's credits only
// when the guarded transition actually applied. If the row already left
// GENERATING under another session, nothing is billed: a record that ends up
// FAILED must never carry a settlement transaction. A settlement failure
// after the transition is logged and journaled but never rolls back a
// successful generation.
func (o *Orchestrator) complete(ctx context.Context, content *domain.Content, media fal.MediaFile, log infra.Logger) {
	cost := domain.CreditCost(content.Kind)
	metadata := map[string]any{
		"cost": cost,
	}
	if media.Duration > 0 {
		metadata["duration_seconds"] = media.Duration
	}
	if err := o.contents.MarkCompleted(ctx, content.ID, media.URL, media.ThumbnailURL, metadata); err != nil {
		log.Warn().Err(err).Msg("generation: record already terminal, skipping settlement")
		return
	}

	o.settle(ctx, content, cost, log)
	log.Info().Str("media_url", media.URL).Msg("generation: completed")
}

func (o *Orchestrator) settle(ctx context.Context, content *domain.Content, cost int, log infra.Logger) {
	description := fmt.Sprintf("%s generation (%s)", strings.ToLower(string(content.Kind)), strings.ToLower(string(content.Mode)))
	applied, err := o.ledger.Debit(ctx, content.UserID, cost, description, content.ID)
	if err != nil {
		log.Error().Err(err).Msg("generation: settlement failed, recording for reconciliation")
		if o.journal != nil {
			tx := domain.CreditTransaction{
				UserID:      content.UserID,
				ContentID:   content.ID,
				Amount:      cost,
				Description: description,
			}
			if jerr := o.journal.RecordUnbilled(ctx, tx, err.Error()); jerr != nil {
				log.Error().Err(jerr).Msg("generation: unbilled journal write failed")
			}
		}
		return
	}
	if !applied {
		log.Warn().Msg("generation: settlement already recorded, skipping")
		return
	}
	log.Info().Int("cost", cost).Msg("generation: settled")
}

func (o *Orchestrator) fail(ctx context.Context, contentID, message string, log infra.Logger) {
	if err := o.contents.MarkFailed(ctx, contentID, message); err != nil {
		log.Error().Err(err).Msg("generation: mark failed errored")
		return
	}
	log.Info().Str("reason", message).Msg("generation: failed without charge")
}
