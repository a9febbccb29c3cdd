package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/domain"
)

// StatusChange bundles everything a single status transition writes. The
// repository applies it as one statement so status, officer, eta and the
// update-log append land together or not at all.
type StatusChange struct {
	Status  domain.ReportStatus
	Officer *string
	ETA     *string
	Entry   domain.ReportUpdate
}

// ReportRepository encapsulates report persistence. Boost and UpdateStatus
// must be server-side atomic operations, never client-side read-modify-write.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, query ListQuery) ([]domain.Report, error)
	ListByWard(ctx context.Context, ward string, status *domain.ReportStatus, limit int) ([]domain.Report, error)
	UpdateStatus(ctx context.Context, id string, change StatusChange) error
	Boost(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) error
	Stream(ctx context.Context, ward string, fn func(*domain.Report) error) error
}

const reportColumns = `id, title, description, issue_type, status, latitude, longitude,
               image_url, assigned_to, assigned_officer, eta, boosts, reported_by,
               updates, created_at, last_updated`

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	updates, err := json.Marshal(report.Updates)
	if err != nil {
		return fmt.Errorf("marshal updates: %w", err)
	}
	const query = `
        INSERT INTO reports (title, description, issue_type, status, latitude, longitude,
            image_url, assigned_to, assigned_officer, eta, boosts, reported_by, updates)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13::jsonb)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		report.Title,
		report.Description,
		report.IssueType,
		report.Status,
		report.Latitude,
		report.Longitude,
		report.ImageURL,
		report.AssignedTo,
		report.AssignedOfficer,
		report.ETA,
		report.Boosts,
		report.ReportedBy,
		updates,
	).Scan(&report.ID, &report.CreatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanReport(row)
}

func (r *reportRepository) List(ctx context.Context, listQuery ListQuery) ([]domain.Report, error) {
	plan := listQuery.Plan()
	base := `SELECT ` + reportColumns + ` FROM reports`

	var (
		query string
		args  []any
	)
	switch {
	case plan.Filtered():
		query = fmt.Sprintf("%s WHERE %s=$1 LIMIT %d", base, plan.Field, plan.Limit)
		args = []any{plan.Value}
	default:
		query = fmt.Sprintf("%s ORDER BY created_at DESC LIMIT %d", base, plan.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

func (r *reportRepository) ListByWard(ctx context.Context, ward string, status *domain.ReportStatus, limit int) ([]domain.Report, error) {
	if limit <= 0 {
		limit = DefaultWardListLimit
	}
	base := `SELECT ` + reportColumns + ` FROM reports WHERE assigned_to=$1`
	args := []any{ward}
	if status != nil {
		args = append(args, *status)
		base += fmt.Sprintf(" AND status=$%d", len(args))
	}
	query := fmt.Sprintf("%s ORDER BY boosts DESC, created_at DESC LIMIT %d", base, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id string, change StatusChange) error {
	entry, err := json.Marshal([]domain.ReportUpdate{change.Entry})
	if err != nil {
		return fmt.Errorf("marshal update entry: %w", err)
	}
	// Single statement: the status write and the log append are atomic at
	// the document level, concurrent transitions never lose entries.
	const query = `
        UPDATE reports SET status=$2,
            assigned_officer = COALESCE($3, assigned_officer),
            eta = COALESCE($4, eta),
            updates = updates || $5::jsonb,
            last_updated = NOW()
        WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id, change.Status, change.Officer, change.ETA, entry)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) Boost(ctx context.Context, id string) (int64, error) {
	const query = `UPDATE reports SET boosts = boosts + 1 WHERE id=$1 RETURNING boosts`
	var boosts int64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&boosts); err != nil {
		return 0, err
	}
	return boosts, nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Stream walks the (optionally ward-filtered) report set once, invoking fn
// per report. Used by the analytics scan.
func (r *reportRepository) Stream(ctx context.Context, ward string, fn func(*domain.Report) error) error {
	query := `SELECT ` + reportColumns + ` FROM reports`
	args := []any{}
	if ward != "" {
		query += ` WHERE assigned_to=$1`
		args = append(args, ward)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return err
		}
		if err := fn(report); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var (
		report  domain.Report
		updates []byte
	)
	if err := row.Scan(
		&report.ID,
		&report.Title,
		&report.Description,
		&report.IssueType,
		&report.Status,
		&report.Latitude,
		&report.Longitude,
		&report.ImageURL,
		&report.AssignedTo,
		&report.AssignedOfficer,
		&report.ETA,
		&report.Boosts,
		&report.ReportedBy,
		&updates,
		&report.CreatedAt,
		&report.LastUpdated,
	); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := json.Unmarshal(updates, &report.Updates); err != nil {
			return nil, fmt.Errorf("unmarshal updates: %w", err)
		}
	}
	return &report, nil
}

func scanReports(rows pgx.Rows) ([]domain.Report, error) {
	var result []domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *report)
	}
	return result, rows.Err()
}
