package repository

import (
	"context"
	"fmt"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/infra"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type locationRepo struct{}

// NewLocationRepository returns a pgx-backed LocationRepository.
func NewLocationRepository() LocationRepository {
	return &locationRepo{}
}

func (r *locationRepo) ListWilayas(ctx context.Context, db DBTX) ([]domain.Wilaya, error) {
	rows, err := db.Query(ctx, `
		SELECT code, name, shipping_fee, home_delivery, stop_desk_delivery
		FROM wilayas ORDER BY code ASC`)
	if err != nil {
		return nil, fmt.Errorf("query wilayas: %w", err)
	}
	defer rows.Close()

	var wilayas []domain.Wilaya
	for rows.Next() {
		var w domain.Wilaya
		var feeNum pgtype.Numeric
		if err := rows.Scan(&w.Code, &w.Name, &feeNum, &w.HomeDelivery, &w.StopDeskDelivery); err != nil {
			return nil, fmt.Errorf("scan wilaya row: %w", err)
		}
		var convErr error
		w.ShippingFeeCents, convErr = infra.NumericToInt64(feeNum)
		if convErr != nil {
			return nil, fmt.Errorf("convert shipping_fee: %w", convErr)
		}
		wilayas = append(wilayas, w)
	}
	return wilayas, rows.Err()
}

func (r *locationRepo) FindWilaya(ctx context.Context, db DBTX, code string) (*domain.Wilaya, error) {
	var w domain.Wilaya
	var feeNum pgtype.Numeric
	err := db.QueryRow(ctx, `
		SELECT code, name, shipping_fee, home_delivery, stop_desk_delivery
		FROM wilayas WHERE code = $1`, code).
		Scan(&w.Code, &w.Name, &feeNum, &w.HomeDelivery, &w.StopDeskDelivery)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query wilaya: %w", err)
	}

	var convErr error
	w.ShippingFeeCents, convErr = infra.NumericToInt64(feeNum)
	if convErr != nil {
		return nil, fmt.Errorf("convert shipping_fee: %w", convErr)
	}
	return &w, nil
}

func (r *locationRepo) ListCommunes(ctx context.Context, db DBTX, wilayaCode string) ([]domain.Commune, error) {
	rows, err := db.Query(ctx, `
		SELECT wilaya_code, name
		FROM communes WHERE wilaya_code = $1 ORDER BY name ASC`, wilayaCode)
	if err != nil {
		return nil, fmt.Errorf("query communes: %w", err)
	}
	defer rows.Close()

	var communes []domain.Commune
	for rows.Next() {
		var c domain.Commune
		if err := rows.Scan(&c.WilayaCode, &c.Name); err != nil {
			return nil, fmt.Errorf("scan commune row: %w", err)
		}
		communes = append(communes, c)
	}
	return communes, rows.Err()
}
