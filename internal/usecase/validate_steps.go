package usecase

import (
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/planner"
)

// acceptedStep é um candidato que sobreviveu à validação. Ainda não tem
// id nem datas: isso é papel do agendamento.
type acceptedStep struct {
	OffsetDays int
	Channel    entity.Channel
	Intent     entity.Intent
	Goal       string
}

// validateCandidates filtra a lista crua do gerador. Candidato ruim é
// descartado em silêncio; o chamador só enxerga quantos sobraram.
// Nunca retorna erro: entrada lixo só produz lista menor.
func validateCandidates(candidates []planner.StepCandidate, stage string, hasPriorContact bool, horizonDays int) []acceptedStep {
	accepted := make([]acceptedStep, 0, len(candidates))

	for _, c := range candidates {
		if c.OffsetDays == nil {
			continue
		}
		offset := *c.OffsetDays
		if offset < 0 || offset > horizonDays {
			continue
		}

		if !entity.IsValidChannel(c.Channel) {
			continue
		}

		intent := NormalizeIntent(stage, c.Intent, hasPriorContact)
		// O normalizador só devolve valores do vocabulário; o check
		// fica como dupla garantia contra mudanças futuras nele.
		if !entity.IsValidIntent(string(intent)) {
			continue
		}

		accepted = append(accepted, acceptedStep{
			OffsetDays: offset,
			Channel:    entity.Channel(c.Channel),
			Intent:     intent,
			Goal:       c.Goal,
		})
	}

	return accepted
}
