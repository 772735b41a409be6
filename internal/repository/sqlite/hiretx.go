package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gigboard/gigboard/pkg/models"
	"github.com/gigboard/gigboard/pkg/repository"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// hireTx wraps a sql.Tx as the atomic hire mutation. The DSN requests
// immediate transactions, so Begin already holds the write lock and
// concurrent hire attempts serialize at the store. The conditional updates
// below additionally turn a lost race into repository.ErrTxConflict instead
// of a silent double assignment.
type hireTx struct {
	tx *sql.Tx
}

var _ repository.HireTx = (*hireTx)(nil)

func (r *SQLiteRepo) Begin(ctx context.Context) (repository.HireTx, error) {
	tx, err := r.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		if isLockConflict(err) {
			return nil, repository.ErrTxConflict
		}

		return nil, err
	}

	return &hireTx{tx: tx}, nil
}

func (t *hireTx) GetGig(ctx context.Context, id int64) (*models.Gig, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+gigColumns+` FROM gigs WHERE id = ?`, id)
	g, err := scanGig(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return g, nil
}

func (t *hireTx) GetBid(ctx context.Context, id int64) (*models.Bid, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+bidColumns+` FROM bids WHERE id = ?`, id)
	b, err := scanBid(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return b, nil
}

func (t *hireTx) AssignGig(ctx context.Context, gigID, freelancerID int64) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE gigs SET status = ?, hired_freelancer_id = ? WHERE id = ? AND status = ?`,
		models.GigStatusAssigned, freelancerID, gigID, models.GigStatusOpen)
	if err != nil {
		if isLockConflict(err) {
			return repository.ErrTxConflict
		}

		return err
	}

	return requireOneRow(res)
}

func (t *hireTx) MarkBidHired(ctx context.Context, bidID int64) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE bids SET status = ? WHERE id = ? AND status = ?`,
		models.BidStatusHired, bidID, models.BidStatusPending)
	if err != nil {
		if isLockConflict(err) {
			return repository.ErrTxConflict
		}

		return err
	}

	return requireOneRow(res)
}

func (t *hireTx) RejectOtherBids(ctx context.Context, gigID, excludeBidID int64) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `UPDATE bids SET status = ? WHERE gig_id = ? AND id <> ? AND status = ?`,
		models.BidStatusRejected, gigID, excludeBidID, models.BidStatusPending)
	if err != nil {
		if isLockConflict(err) {
			return 0, repository.ErrTxConflict
		}

		return 0, err
	}

	return res.RowsAffected()
}

func (t *hireTx) Commit() error {
	err := t.tx.Commit()
	if err != nil && isLockConflict(err) {
		return repository.ErrTxConflict
	}

	return err
}

// Rollback is idempotent: rolling back a finished transaction is a no-op.
func (t *hireTx) Rollback() error {
	err := t.tx.Rollback()
	if err == nil || errors.Is(err, sql.ErrTxDone) {
		return nil
	}

	return err
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrTxConflict
	}

	return nil
}

// isLockConflict reports whether err is SQLITE_BUSY or SQLITE_LOCKED, the
// two codes sqlite uses when a transaction loses a locking race.
func isLockConflict(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}

	return false
}
