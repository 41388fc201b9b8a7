package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type OutreachStepRepository struct {
	DB *sql.DB
}

func NewOutreachStepRepository(db *sql.DB) *OutreachStepRepository {
	return &OutreachStepRepository{DB: db}
}

// InsertBatch grava todos os passos de um plano em uma única transação.
// Plano pela metade (só o "intro", sem o follow-up) é pior que plano
// nenhum, então qualquer insert que falhe derruba o lote inteiro.
func (r *OutreachStepRepository) InsertBatch(ctx context.Context, steps []*entity.OutreachStep) error {
	if len(steps) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO outreach_steps (id, deal_id, due_date, channel, intent, goal, status, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, step := range steps {
		_, err := tx.ExecContext(ctx, query,
			step.ID,
			step.DealID,
			step.DueDate,
			step.Channel,
			step.Intent,
			nullString(step.Goal),
			step.Status.State(),
			step.Status.CompletedAt(),
			step.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("falha ao inserir passo %s: %w", step.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("falha ao commitar plano: %w", err)
	}

	return nil
}

// SetStatus aplica a transição em um único UPDATE: o completed_at é
// preenchido ou limpo na mesma instrução, então nenhum leitor enxerga o
// par status/completed_at fora do invariante. Id inexistente vira
// entity.ErrStepNotFound, não erro.
func (r *OutreachStepRepository) SetStatus(ctx context.Context, stepID string, state entity.StepState) (*entity.OutreachStep, error) {
	query := `
		UPDATE outreach_steps
		SET status = $2,
		    completed_at = CASE WHEN $2 = 'pending' THEN NULL ELSE NOW() END
		WHERE id = $1
		RETURNING id, deal_id, due_date, channel, intent, COALESCE(goal, ''), status, completed_at, created_at
	`

	step, err := scanStep(r.DB.QueryRowContext(ctx, query, stepID, string(state)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrStepNotFound
	}
	return step, err
}

func (r *OutreachStepRepository) ListByDeal(ctx context.Context, dealID string) ([]*entity.OutreachStep, error) {
	query := `
		SELECT id, deal_id, due_date, channel, intent, COALESCE(goal, ''), status, completed_at, created_at
		FROM outreach_steps
		WHERE deal_id = $1
		ORDER BY due_date ASC, created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, dealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []*entity.OutreachStep
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return steps, rows.Err()
}

func scanStep(row rowScanner) (*entity.OutreachStep, error) {
	var step entity.OutreachStep
	var state string
	var completedAt sql.NullTime

	err := row.Scan(
		&step.ID,
		&step.DealID,
		&step.DueDate,
		&step.Channel,
		&step.Intent,
		&step.Goal,
		&state,
		&completedAt,
		&step.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	var at *time.Time
	if completedAt.Valid {
		at = &completedAt.Time
	}
	status, err := entity.StatusFromRow(state, at)
	if err != nil {
		return nil, fmt.Errorf("linha inconsistente para step %s: %w", step.ID, err)
	}
	step.Status = status

	return &step, nil
}
