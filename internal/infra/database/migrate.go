package database

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateTables garante o schema na subida do serviço. Idempotente: tudo
// IF NOT EXISTS, rodar duas vezes não quebra nada.
func CreateTables(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id         UUID PRIMARY KEY,
			email      TEXT NOT NULL UNIQUE,
			name       TEXT,
			phone      TEXT,
			company    TEXT,
			source     TEXT,
			status     TEXT NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS deals (
			id              UUID PRIMARY KEY,
			lead_id         UUID REFERENCES leads(id),
			title           TEXT NOT NULL,
			contact_name    TEXT NOT NULL,
			contact_email   TEXT,
			contact_phone   TEXT,
			value_cents     INTEGER NOT NULL DEFAULT 0,
			stage           TEXT NOT NULL DEFAULT 'new',
			last_contact_at TIMESTAMPTZ,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS activities (
			id         UUID PRIMARY KEY,
			deal_id    UUID NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
			type       TEXT NOT NULL,
			note       TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS outreach_steps (
			id               UUID PRIMARY KEY,
			deal_id          UUID NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
			due_date         TIMESTAMPTZ NOT NULL,
			channel          TEXT NOT NULL,
			intent           TEXT NOT NULL,
			goal             TEXT,
			status           TEXT NOT NULL DEFAULT 'pending',
			completed_at     TIMESTAMPTZ,
			reminder_sent_at TIMESTAMPTZ,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT outreach_steps_completed_at_chk CHECK (
				(status = 'pending' AND completed_at IS NULL)
				OR (status <> 'pending' AND completed_at IS NOT NULL)
			)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_deal ON activities (deal_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_outreach_steps_deal ON outreach_steps (deal_id, due_date, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_outreach_steps_due ON outreach_steps (due_date) WHERE status = 'pending' AND reminder_sent_at IS NULL`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("falha ao criar schema: %w", err)
		}
	}

	return nil
}
