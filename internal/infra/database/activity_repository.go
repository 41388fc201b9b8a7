package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ActivityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	query := `
		INSERT INTO activities (id, deal_id, type, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(ctx, query,
		activity.ID,
		activity.DealID,
		activity.Type,
		nullString(activity.Note),
		activity.CreatedAt,
	)

	return err
}

func (r *ActivityRepository) ListByDeal(ctx context.Context, dealID string) ([]*entity.Activity, error) {
	query := `
		SELECT id, deal_id, type, COALESCE(note, ''), created_at
		FROM activities
		WHERE deal_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, dealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.DealID, &a.Type, &a.Note, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, &a)
	}

	return activities, rows.Err()
}

func (r *ActivityRepository) RecentTypes(ctx context.Context, dealID string, limit int) ([]string, error) {
	query := `
		SELECT type
		FROM activities
		WHERE deal_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, dealID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	return types, rows.Err()
}
