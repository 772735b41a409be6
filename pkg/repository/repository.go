package repository

import (
	"context"
	"errors"

	"github.com/gigboard/gigboard/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// ErrTxConflict is returned by a HireTx when a guarded mutation lost a
// concurrency race: either the conditional update matched no row because
// another transaction already moved the entity out of its expected status,
// or the storage engine refused the write with a lock conflict.
var ErrTxConflict = errors.New("transaction conflict")

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// GigFilter narrows ListGigs. Zero values mean "no constraint".
type GigFilter struct {
	Search string // substring match on title
	Status string
	Limit  int
}

type GigRepo interface {
	CreateGig(ctx context.Context, g *models.Gig) (int64, error)
	GetGig(ctx context.Context, id int64) (*models.Gig, error)
	ListGigs(ctx context.Context, f GigFilter) ([]models.Gig, error)
	ListGigsByOwner(ctx context.Context, ownerID int64) ([]models.Gig, error)
	ListGigsAssignedTo(ctx context.Context, freelancerID int64) ([]models.Gig, error)
}

type BidRepo interface {
	CreateBid(ctx context.Context, b *models.Bid) (int64, error)
	GetBid(ctx context.Context, id int64) (*models.Bid, error)
	ListBidsByGig(ctx context.Context, gigID int64) ([]models.Bid, error)
}

// HireStore opens the transactional view the hiring engine mutates through.
// Two transactions racing to assign the same gig must not both observe it
// open: the implementation either serializes them or fails one with
// ErrTxConflict.
type HireStore interface {
	Begin(ctx context.Context) (HireTx, error)
}

// HireTx is a single atomic hire mutation. All reads and writes are isolated
// from concurrently committing transactions; nothing is visible outside the
// transaction until Commit. Rollback is idempotent and safe after Commit.
type HireTx interface {
	GetGig(ctx context.Context, id int64) (*models.Gig, error)
	GetBid(ctx context.Context, id int64) (*models.Bid, error)

	// AssignGig flips the gig open -> assigned and records the winning
	// freelancer. Returns ErrTxConflict when the gig is no longer open.
	AssignGig(ctx context.Context, gigID, freelancerID int64) error

	// MarkBidHired flips the bid pending -> hired. Returns ErrTxConflict
	// when the bid already left pending.
	MarkBidHired(ctx context.Context, bidID int64) error

	// RejectOtherBids moves every other pending bid on the gig to rejected
	// and reports how many were touched.
	RejectOtherBids(ctx context.Context, gigID, excludeBidID int64) (int64, error)

	Commit() error
	Rollback() error
}
