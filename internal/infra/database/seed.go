package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// SeedDemoData popula leads e deals de demonstração em banco vazio.
// Útil para subir o ambiente de dev sem depender do front.
func SeedDemoData(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deals`).Scan(&count); err != nil {
		return fmt.Errorf("falha ao checar seed: %w", err)
	}
	if count > 0 {
		return nil // já tem dados, não mexe
	}

	leadRepo := NewLeadRepository(db)
	dealRepo := NewDealRepository(db)

	demos := []struct {
		email, name, phone, company string
		title                       string
		valueCents                  int
		stage                       string
		contacted                   bool
	}{
		{"carla@farmaciavida.com.br", "Carla Menezes", "(11) 98811-2233", "Farmácia Vida", "Plano corporativo Farmácia Vida", 1250000, entity.StageNew, false},
		{"roberto@clinicasantafe.com.br", "Roberto Tanaka", "(21) 99744-5566", "Clínica Santa Fé", "Telemedicina Clínica Santa Fé", 3890000, entity.StageProposalSent, true},
		{"ana@grupomov.com.br", "Ana Paula Reis", "(31) 98122-7788", "Grupo MOV", "Benefício saúde Grupo MOV", 760000, entity.StageLost, true},
	}

	for _, d := range demos {
		lead, err := entity.NewLead(d.email, d.name, d.phone, d.company, "seed")
		if err != nil {
			return err
		}
		if err := leadRepo.Upsert(ctx, lead); err != nil {
			return fmt.Errorf("falha ao semear lead %s: %w", d.email, err)
		}

		deal, err := entity.NewDeal(lead.ID, d.title, d.name, d.email, d.phone, d.valueCents)
		if err != nil {
			return err
		}
		deal.Stage = d.stage
		if d.contacted {
			at := time.Now().AddDate(0, 0, -5)
			deal.LastContactAt = &at
		}
		if err := dealRepo.Create(ctx, deal); err != nil {
			return fmt.Errorf("falha ao semear deal %s: %w", d.title, err)
		}
	}

	log.Printf("🌱 Seed: %d leads/deals de demonstração criados", len(demos))
	return nil
}
