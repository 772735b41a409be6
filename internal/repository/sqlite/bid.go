package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gigboard/gigboard/pkg/models"
)

const bidColumns = `id, gig_id, freelancer_id, message, price, status, created`

func (r *SQLiteRepo) CreateBid(ctx context.Context, b *models.Bid) (int64, error) {
	if b == nil {
		return 0, fmt.Errorf("bid is nil")
	}
	if b.Status == "" {
		b.Status = models.BidStatusPending
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO bids (gig_id, freelancer_id, message, price, status, created) VALUES (?, ?, ?, ?, ?, ?)`,
		b.GigID, b.FreelancerID, b.Message, b.Price, b.Status, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetBid(ctx context.Context, id int64) (*models.Bid, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+bidColumns+` FROM bids WHERE id = ?`, id)
	b, err := scanBid(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return b, nil
}

func (r *SQLiteRepo) ListBidsByGig(ctx context.Context, gigID int64) ([]models.Bid, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+bidColumns+` FROM bids WHERE gig_id = ? ORDER BY created ASC`, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Bid
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}

	return out, rows.Err()
}

func scanBid(row rowScanner) (*models.Bid, error) {
	var b models.Bid
	if err := row.Scan(&b.ID, &b.GigID, &b.FreelancerID, &b.Message, &b.Price, &b.Status, &b.Created); err != nil {
		return nil, err
	}

	return &b, nil
}
