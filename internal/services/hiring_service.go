package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gigflow/internal/models"
	"gigflow/internal/notify"
	"gigflow/internal/storage"
	"gigflow/internal/telemetry"
	"gigflow/internal/transport/dto"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

// HiringConfig bounds how hard the coordinator retries a lost race or an
// unavailable store.
type HiringConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	AttemptTimeout time.Duration
}

// DefaultHiringConfig returns the settings used when none are configured.
func DefaultHiringConfig() HiringConfig {
	return HiringConfig{
		MaxAttempts:    3,
		InitialBackoff: 25 * time.Millisecond,
		MaxBackoff:     250 * time.Millisecond,
		AttemptTimeout: 5 * time.Second,
	}
}

func (c HiringConfig) withDefaults() HiringConfig {
	d := DefaultHiringConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = d.InitialBackoff
	}
	if c.MaxBackoff < c.InitialBackoff {
		c.MaxBackoff = c.InitialBackoff
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = d.AttemptTimeout
	}
	return c
}

type hiringService struct {
	gigs       storage.GigRepository
	bids       storage.BidRepository
	uow        storage.UnitOfWork
	dispatcher notify.Dispatcher
	cfg        HiringConfig
	now        func() time.Time
}

// NewHiringService creates a new instance of HiringService. A nil dispatcher
// discards events.
func NewHiringService(repos storage.Repositories, dispatcher notify.Dispatcher, cfg HiringConfig) HiringService {
	if dispatcher == nil {
		dispatcher = notify.Discard{}
	}
	return &hiringService{
		gigs:       repos.Gigs,
		bids:       repos.Bids,
		uow:        repos.UnitOfWork,
		dispatcher: dispatcher,
		cfg:        cfg.withDefaults(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// HireBid closes the bid's gig, marks the bid hired and rejects every other
// pending bid on the gig in one atomic scope, then notifies the freelancers.
func (s *hiringService) HireBid(ctx context.Context, req *dto.BidActionRequest) (*HireResult, error) {
	attempts := 0
	result, err := retry(ctx, s.cfg, "HireBid", func() (*hireOutcome, error) {
		attempts++
		return s.hireOnce(ctx, req)
	})

	gigID := ""
	if result != nil {
		gigID = result.Gig.ID.String()
		result.Attempts = attempts
	}
	telemetry.RecordCoordination(ctx, "hire", gigID, outcome(err), attempts, err)
	if err != nil {
		return nil, err
	}

	log.Printf("HireBid: Bid %s hired for gig %s by client %s; %d other bids rejected (attempts: %d)",
		result.Bid.ID, result.Gig.ID, req.CallerID, len(result.RejectedBidIDs), attempts)

	at := s.now()
	s.dispatch(ctx, notify.HiredEvent(result.Bid.FreelancerID, result.Gig.ID, result.Bid.ID, result.Gig.Title, at))
	for _, rejected := range result.rejected {
		s.dispatch(ctx, notify.RejectedEvent(rejected.FreelancerID, result.Gig.ID, rejected.ID, result.Gig.Title, at))
	}
	return &result.HireResult, nil
}

type hireOutcome struct {
	HireResult
	rejected []models.Bid
}

func (s *hiringService) hireOnce(ctx context.Context, req *dto.BidActionRequest) (*hireOutcome, error) {
	// 1. Load the snapshot outside the atomic scope
	bid, err := s.bids.GetByID(ctx, req.BidID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching bid %s", req.BidID))
	}
	gig, err := s.gigs.GetByID(ctx, bid.GigID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching gig %s for bid %s", bid.GigID, bid.ID))
	}

	// 2. Authorization & State Checks
	if gig.ClientID != req.CallerID {
		log.Printf("HireBid: Forbidden attempt by user %s on gig %s owned by %s", req.CallerID, gig.ID, gig.ClientID)
		return nil, fmt.Errorf("%w: only the gig owner can hire", ErrForbidden)
	}
	if gig.Status != models.GigStatusOpen {
		return nil, fmt.Errorf("%w: gig is %s, not open", ErrInvalidState, gig.Status)
	}
	if bid.Status != models.BidStatusPending {
		return nil, fmt.Errorf("%w: bid is %s, not pending", ErrInvalidState, bid.Status)
	}

	// 3. Conditioned writes, all or nothing
	scopeCtx, cancel := context.WithTimeout(ctx, s.cfg.AttemptTimeout)
	defer cancel()

	var out hireOutcome
	err = s.uow.Do(scopeCtx, func(ctx context.Context, tx storage.Tx) error {
		assigned, err := tx.Gigs().Assign(ctx, gig.ID, bid.ID)
		if err != nil {
			return err
		}
		hired, err := tx.Bids().MarkHired(ctx, bid.ID)
		if err != nil {
			return err
		}
		rejected, err := tx.Bids().RejectAllPendingExcept(ctx, gig.ID, bid.ID)
		if err != nil {
			return err
		}
		out = hireOutcome{
			HireResult: HireResult{Gig: *assigned, Bid: *hired, RejectedBidIDs: bidIDs(rejected)},
			rejected:   rejected,
		}
		return nil
	})
	if err != nil {
		return nil, mapScopeError(err, fmt.Sprintf("hiring bid %s", bid.ID))
	}
	return &out, nil
}

// CancelGig moves an open gig to cancelled and rejects all of its pending bids.
func (s *hiringService) CancelGig(ctx context.Context, req *dto.GigActionRequest) (*CancelResult, error) {
	attempts := 0
	result, err := retry(ctx, s.cfg, "CancelGig", func() (*cancelOutcome, error) {
		attempts++
		return s.cancelOnce(ctx, req)
	})
	telemetry.RecordCoordination(ctx, "cancel", req.GigID.String(), outcome(err), attempts, err)
	if err != nil {
		return nil, err
	}
	result.Attempts = attempts

	log.Printf("CancelGig: Gig %s cancelled by client %s; %d bids rejected", req.GigID, req.CallerID, len(result.RejectedBidIDs))

	at := s.now()
	for _, rejected := range result.rejected {
		s.dispatch(ctx, notify.RejectedEvent(rejected.FreelancerID, result.Gig.ID, rejected.ID, result.Gig.Title, at))
	}
	return &result.CancelResult, nil
}

type cancelOutcome struct {
	CancelResult
	rejected []models.Bid
}

func (s *hiringService) cancelOnce(ctx context.Context, req *dto.GigActionRequest) (*cancelOutcome, error) {
	gig, err := s.gigs.GetByID(ctx, req.GigID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching gig %s", req.GigID))
	}
	if gig.ClientID != req.CallerID {
		log.Printf("CancelGig: Forbidden attempt by user %s on gig %s owned by %s", req.CallerID, gig.ID, gig.ClientID)
		return nil, fmt.Errorf("%w: only the gig owner can cancel", ErrForbidden)
	}
	if gig.Status != models.GigStatusOpen {
		return nil, fmt.Errorf("%w: gig is %s, not open", ErrInvalidState, gig.Status)
	}

	scopeCtx, cancel := context.WithTimeout(ctx, s.cfg.AttemptTimeout)
	defer cancel()

	var out cancelOutcome
	err = s.uow.Do(scopeCtx, func(ctx context.Context, tx storage.Tx) error {
		cancelled, err := tx.Gigs().Cancel(ctx, gig.ID)
		if err != nil {
			return err
		}
		rejected, err := tx.Bids().RejectAllPendingExcept(ctx, gig.ID, uuid.Nil)
		if err != nil {
			return err
		}
		out = cancelOutcome{
			CancelResult: CancelResult{Gig: *cancelled, RejectedBidIDs: bidIDs(rejected)},
			rejected:     rejected,
		}
		return nil
	})
	if err != nil {
		return nil, mapScopeError(err, fmt.Sprintf("cancelling gig %s", gig.ID))
	}
	return &out, nil
}

// dispatch sends one event. Delivery failures never undo a committed change.
func (s *hiringService) dispatch(ctx context.Context, event notify.Event) {
	if err := s.dispatcher.Dispatch(context.WithoutCancel(ctx), event); err != nil {
		log.Printf("HiringService: Failed to dispatch %s event to user %s: %v", event.Type, event.FreelancerID, err)
	}
}

// retry runs op until it succeeds, fails with a non-retryable error or runs
// out of attempts. Only ErrConflict and ErrStoreUnavailable are retried.
func retry[T any](ctx context.Context, cfg HiringConfig, name string, op func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialBackoff
	b.MaxInterval = cfg.MaxBackoff

	result, err := backoff.Retry(ctx, func() (T, error) {
		result, err := op()
		if err == nil {
			return result, nil
		}
		if errors.Is(err, ErrConflict) || errors.Is(err, ErrStoreUnavailable) {
			log.Printf("%s: Retryable failure: %v", name, err)
			return result, err
		}
		return result, backoff.Permanent(err)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(cfg.MaxAttempts)),
	)
	if err != nil {
		var zero T
		// Retry returns the bare context error when the caller gives up mid-wait.
		if !isServiceError(err) && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return zero, fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, name, err)
		}
		return zero, err
	}
	return result, nil
}

func isServiceError(err error) bool {
	for _, target := range []error{ErrNotFound, ErrForbidden, ErrConflict, ErrValidation, ErrInvalidState, ErrStoreUnavailable, ErrInvalidCredentials} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func bidIDs(bids []models.Bid) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(bids))
	for _, b := range bids {
		ids = append(ids, b.ID)
	}
	return ids
}
