// Package hiring converts an open, multi-bidder gig into a single-winner
// assigned gig. The transition is atomic: the gig flip, the winning bid and
// the bulk rejection of every other bid commit together or not at all.
package hiring

import (
	"context"
	"errors"
	"fmt"

	"log/slog"

	"github.com/gigboard/gigboard/pkg/models"
	"github.com/gigboard/gigboard/pkg/repository"
)

// Event names pushed through the notifier after a successful hire.
const (
	EventGigStatusUpdated = "gig-status-updated"
	EventHiredNotice      = "hired-notification"
)

// Notifier fans a committed hire out to connected clients. Both calls are
// fire-and-forget and happen outside the transaction boundary: a crash
// between commit and notify loses the notification, never the hire.
type Notifier interface {
	Broadcast(event string, payload any)
	SendTo(userID int64, event string, payload any)
}

// Engine orchestrates the hire transition. It performs no in-process
// locking: the exactly-one-winner guarantee rests on the store's
// transaction isolation.
type Engine struct {
	store    repository.HireStore
	gigs     repository.GigRepo
	notifier Notifier
	logger   *slog.Logger
}

func NewEngine(store repository.HireStore, gigs repository.GigRepo, notifier Notifier, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, gigs: gigs, notifier: notifier, logger: logger}
}

// Hire selects the bid as the gig's winner on behalf of requesterID. All
// validation re-reads state inside the transaction; a status observed by an
// earlier request is never trusted. On success the new gig status is
// broadcast and the hired freelancer, if connected, gets a private notice.
func (e *Engine) Hire(ctx context.Context, bidID, requesterID int64) error {
	tx, err := e.store.Begin(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrTxConflict) {
			return fmt.Errorf("begin hire tx: %w", ErrConflict)
		}
		return fmt.Errorf("begin hire tx: %w", err)
	}

	gig, bid, err := e.hireInTx(ctx, tx, bidID, requesterID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			e.logger.Error("rollback hire tx", slog.Any("err", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			e.logger.Error("rollback hire tx", slog.Any("err", rbErr))
		}
		// a commit that fails lost the race one way or another
		e.logger.Warn("hire commit failed", slog.Int64("bid_id", bidID), slog.Any("err", err))
		return fmt.Errorf("commit hire of bid %d: %w", bidID, ErrConflict)
	}

	e.logger.Info("freelancer hired",
		slog.Int64("gig_id", gig.ID),
		slog.Int64("bid_id", bid.ID),
		slog.Int64("freelancer_id", bid.FreelancerID),
	)

	e.notifyHired(gig, bid)

	return nil
}

// hireInTx runs validation and mutation. Any returned error means the
// caller must roll back; no partial state escapes the transaction.
func (e *Engine) hireInTx(ctx context.Context, tx repository.HireTx, bidID, requesterID int64) (*models.Gig, *models.Bid, error) {
	bid, err := tx.GetBid(ctx, bidID)
	if err != nil {
		return nil, nil, fmt.Errorf("load bid %d: %w", bidID, err)
	}
	if bid == nil {
		return nil, nil, fmt.Errorf("bid %d: %w", bidID, ErrNotFound)
	}

	gig, err := tx.GetGig(ctx, bid.GigID)
	if err != nil {
		return nil, nil, fmt.Errorf("load gig %d: %w", bid.GigID, err)
	}
	if gig == nil {
		return nil, nil, fmt.Errorf("gig %d: %w", bid.GigID, ErrNotFound)
	}

	// ownership is re-checked inside the transaction even though the
	// route is already authenticated
	if gig.OwnerID != requesterID {
		return nil, nil, fmt.Errorf("gig %d owner %d, requester %d: %w", gig.ID, gig.OwnerID, requesterID, ErrForbidden)
	}

	if gig.Status != models.GigStatusOpen {
		return nil, nil, fmt.Errorf("gig %d: %w", gig.ID, ErrConflict)
	}

	if err := tx.AssignGig(ctx, gig.ID, bid.FreelancerID); err != nil {
		return nil, nil, wrapTxErr(err, "assign gig", gig.ID)
	}
	if err := tx.MarkBidHired(ctx, bid.ID); err != nil {
		return nil, nil, wrapTxErr(err, "mark bid hired", bid.ID)
	}
	if _, err := tx.RejectOtherBids(ctx, gig.ID, bid.ID); err != nil {
		return nil, nil, wrapTxErr(err, "reject other bids", gig.ID)
	}

	return gig, bid, nil
}

func (e *Engine) notifyHired(gig *models.Gig, bid *models.Bid) {
	if e.notifier == nil {
		return
	}

	e.notifier.Broadcast(EventGigStatusUpdated, map[string]any{
		"gigId":  gig.ID,
		"status": models.GigStatusAssigned,
	})
	e.notifier.SendTo(bid.FreelancerID, EventHiredNotice, map[string]any{
		"message": fmt.Sprintf("You have been hired for: %s!", gig.Title),
		"gigId":   gig.ID,
	})
}

func wrapTxErr(err error, op string, id int64) error {
	if errors.Is(err, repository.ErrTxConflict) {
		return fmt.Errorf("%s %d: %w", op, id, ErrConflict)
	}

	return fmt.Errorf("%s %d: %w", op, id, err)
}

// Dashboard is the per-user view composed for GET /v1/dashboard.
type Dashboard struct {
	OwnedGigs    []models.Gig `json:"owned_gigs"`
	AssignedJobs []models.Gig `json:"assigned_jobs"`
}

// DashboardFor lists the gigs the user posted and the gigs of others the
// user was hired for. Read-only; no transaction needed.
func (e *Engine) DashboardFor(ctx context.Context, userID int64) (*Dashboard, error) {
	owned, err := e.gigs.ListGigsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned gigs: %w", err)
	}

	assigned, err := e.gigs.ListGigsAssignedTo(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list assigned gigs: %w", err)
	}

	if owned == nil {
		owned = []models.Gig{}
	}
	if assigned == nil {
		assigned = []models.Gig{}
	}

	return &Dashboard{OwnedGigs: owned, AssignedJobs: assigned}, nil
}
