package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type DealRepository struct {
	DB *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{DB: db}
}

const dealColumns = `
	id, COALESCE(lead_id::text, ''), title, contact_name, COALESCE(contact_email, ''),
	COALESCE(contact_phone, ''), value_cents, stage, last_contact_at, created_at, updated_at
`

func (r *DealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	query := `
		INSERT INTO deals (
			id, lead_id, title, contact_name, contact_email, contact_phone,
			value_cents, stage, last_contact_at, created_at, updated_at
		) VALUES (
			$1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.DB.ExecContext(ctx, query,
		deal.ID,
		deal.LeadID,
		deal.Title,
		deal.ContactName,
		nullString(deal.ContactEmail),
		nullString(deal.ContactPhone),
		deal.ValueCents,
		deal.Stage,
		deal.LastContactAt,
		deal.CreatedAt,
		deal.UpdatedAt,
	)

	return err
}

func (r *DealRepository) FindByID(ctx context.Context, id string) (*entity.Deal, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = $1`, id)

	deal, err := scanDeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrDealNotFound
	}
	return deal, err
}

func (r *DealRepository) List(ctx context.Context) ([]*entity.Deal, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+dealColumns+` FROM deals ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []*entity.Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}

	return deals, rows.Err()
}

func (r *DealRepository) Update(ctx context.Context, deal *entity.Deal) error {
	query := `
		UPDATE deals
		SET title = $2, contact_name = $3, contact_email = $4, contact_phone = $5,
		    value_cents = $6, stage = $7, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		deal.ID,
		deal.Title,
		deal.ContactName,
		nullString(deal.ContactEmail),
		nullString(deal.ContactPhone),
		deal.ValueCents,
		deal.Stage,
	)
	if err != nil {
		return err
	}

	return checkFound(result, entity.ErrDealNotFound)
}

func (r *DealRepository) UpdateStage(ctx context.Context, id, stage string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE deals SET stage = $2, updated_at = NOW() WHERE id = $1`,
		id, stage,
	)
	if err != nil {
		return err
	}

	return checkFound(result, entity.ErrDealNotFound)
}

// TouchLastContact registra que houve interação com o deal. Só anda para
// frente: um registro antigo não sobrescreve contato mais recente.
func (r *DealRepository) TouchLastContact(ctx context.Context, id string, at time.Time) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE deals
		SET last_contact_at = GREATEST(COALESCE(last_contact_at, $2), $2), updated_at = NOW()
		WHERE id = $1
	`, id, at)
	if err != nil {
		return err
	}

	return checkFound(result, entity.ErrDealNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (*entity.Deal, error) {
	var deal entity.Deal
	var lastContact sql.NullTime

	err := row.Scan(
		&deal.ID,
		&deal.LeadID,
		&deal.Title,
		&deal.ContactName,
		&deal.ContactEmail,
		&deal.ContactPhone,
		&deal.ValueCents,
		&deal.Stage,
		&lastContact,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastContact.Valid {
		deal.LastContactAt = &lastContact.Time
	}

	return &deal, nil
}
