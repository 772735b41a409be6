package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gigboard/gigboard/pkg/models"
	"github.com/gigboard/gigboard/pkg/repository"
)

const gigColumns = `id, title, description, budget, owner_id, status, hired_freelancer_id, created`

func (r *SQLiteRepo) CreateGig(ctx context.Context, g *models.Gig) (int64, error) {
	if g == nil {
		return 0, fmt.Errorf("gig is nil")
	}
	if g.Status == "" {
		g.Status = models.GigStatusOpen
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO gigs (title, description, budget, owner_id, status, created) VALUES (?, ?, ?, ?, ?, ?)`,
		g.Title, g.Description, g.Budget, g.OwnerID, g.Status, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetGig(ctx context.Context, id int64) (*models.Gig, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+gigColumns+` FROM gigs WHERE id = ?`, id)
	g, err := scanGig(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return g, nil
}

func (r *SQLiteRepo) ListGigs(ctx context.Context, f repository.GigFilter) ([]models.Gig, error) {
	q := `SELECT ` + gigColumns + ` FROM gigs WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Search != "" {
		q += ` AND title LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(f.Search)+"%")
	}
	q += ` ORDER BY created DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	return r.queryGigs(ctx, q, args...)
}

func (r *SQLiteRepo) ListGigsByOwner(ctx context.Context, ownerID int64) ([]models.Gig, error) {
	return r.queryGigs(ctx, `SELECT `+gigColumns+` FROM gigs WHERE owner_id = ? ORDER BY created DESC`, ownerID)
}

func (r *SQLiteRepo) ListGigsAssignedTo(ctx context.Context, freelancerID int64) ([]models.Gig, error) {
	q := `SELECT ` + gigColumns + ` FROM gigs WHERE hired_freelancer_id = ? AND owner_id <> ? AND status = ? ORDER BY created DESC`
	return r.queryGigs(ctx, q, freelancerID, freelancerID, models.GigStatusAssigned)
}

func (r *SQLiteRepo) queryGigs(ctx context.Context, q string, args ...any) ([]models.Gig, error) {
	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Gig
	for rows.Next() {
		g, err := scanGig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGig(row rowScanner) (*models.Gig, error) {
	var g models.Gig
	var hired sql.NullInt64
	if err := row.Scan(&g.ID, &g.Title, &g.Description, &g.Budget, &g.OwnerID, &g.Status, &hired, &g.Created); err != nil {
		return nil, err
	}
	if hired.Valid {
		g.HiredFreelancerID = &hired.Int64
	}

	return &g, nil
}

// escapeLike neutralizes LIKE wildcards in user-supplied search terms.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}

	return string(out)
}
