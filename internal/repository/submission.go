package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/infra"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type submissionRepo struct{}

// NewSubmissionRepository returns a pgx-backed SubmissionRepository.
func NewSubmissionRepository() SubmissionRepository {
	return &submissionRepo{}
}

func (r *submissionRepo) Insert(ctx context.Context, db DBTX, sub *domain.Submission) error {
	values := sub.Values
	if values == nil {
		values = json.RawMessage(`{}`)
	}

	row := db.QueryRow(ctx, `
		INSERT INTO submissions
		  (id, shop_domain, session_id, order_id, status, form_values, total, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		sub.ID,
		sub.ShopDomain,
		sub.SessionID,
		sub.OrderID,
		string(sub.Status),
		values,
		infra.Int64ToNumeric(sub.TotalCents),
		sub.Currency,
	)
	if err := row.Scan(&sub.CreatedAt); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *submissionRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Submission, error) {
	row := db.QueryRow(ctx, `
		SELECT id, shop_domain, session_id, order_id, status, form_values, total, currency, created_at
		FROM submissions WHERE id = $1`, id)
	return scanSubmission(row)
}

// MaxSubmissionPage caps a single submissions page. List callers may ask
// for one row past the page to detect whether another page exists.
const MaxSubmissionPage = 100

func (r *submissionRepo) ListByShop(ctx context.Context, db DBTX, shop string, cursor *string, limit int) ([]domain.Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > MaxSubmissionPage+1 {
		limit = MaxSubmissionPage + 1
	}

	var rows pgx.Rows
	var err error
	if cursor != nil {
		rows, err = db.Query(ctx, `
			SELECT id, shop_domain, session_id, order_id, status, form_values, total, currency, created_at
			FROM submissions
			WHERE shop_domain = $1
			  AND (created_at, id) < ((SELECT created_at, id FROM submissions WHERE id = $2))
			ORDER BY created_at DESC, id DESC
			LIMIT $3`, shop, *cursor, limit)
	} else {
		rows, err = db.Query(ctx, `
			SELECT id, shop_domain, session_id, order_id, status, form_values, total, currency, created_at
			FROM submissions
			WHERE shop_domain = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2`, shop, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		var sub domain.Submission
		var totalNum pgtype.Numeric
		if err := rows.Scan(&sub.ID, &sub.ShopDomain, &sub.SessionID, &sub.OrderID,
			&sub.Status, &sub.Values, &totalNum, &sub.Currency, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission row: %w", err)
		}
		var convErr error
		sub.TotalCents, convErr = infra.NumericToInt64(totalNum)
		if convErr != nil {
			return nil, fmt.Errorf("convert total: %w", convErr)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var sub domain.Submission
	var totalNum pgtype.Numeric
	err := row.Scan(&sub.ID, &sub.ShopDomain, &sub.SessionID, &sub.OrderID,
		&sub.Status, &sub.Values, &totalNum, &sub.Currency, &sub.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan submission: %w", err)
	}

	var convErr error
	sub.TotalCents, convErr = infra.NumericToInt64(totalNum)
	if convErr != nil {
		return nil, fmt.Errorf("convert total: %w", convErr)
	}
	return &sub, nil
}
