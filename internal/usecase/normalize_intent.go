package usecase

import (
	"github.com/xavierca1/ligue-crm/internal/entity"
)

// firstContactByStage é a tabela que corrige um "first_contact" pedido
// para um deal que já andou (ou regrediu) no funil. É o único lugar do
// módulo onde o estágio do deal carrega semântica de negócio.
var firstContactByStage = map[string]entity.Intent{
	entity.StageNew:          entity.IntentFirstContact,
	entity.StageQualified:    entity.IntentNurtureCheckin,
	entity.StageProposalSent: entity.IntentProposalFollowup,
	entity.StageWon:          entity.IntentPostCallSummary,
	entity.StageLost:         entity.IntentDealRecovery,
}

// NormalizeIntent reduz qualquer intent pedido a um valor canônico do
// vocabulário fixo. Nunca devolve valor fora da enumeração.
//
//   - intent ausente -> nurture_checkin (default seguro)
//   - first_contact é sensível ao estágio via firstContactByStage;
//     estágio desconhecido com contato prévio vira nurture_checkin
//   - intent fora do vocabulário -> nurture_checkin
func NormalizeIntent(stage, requestedIntent string, hasPriorContact bool) entity.Intent {
	if requestedIntent == "" {
		return entity.IntentNurtureCheckin
	}

	if requestedIntent == string(entity.IntentFirstContact) {
		if mapped, ok := firstContactByStage[entity.CanonicalStage(stage)]; ok {
			return mapped
		}
		if hasPriorContact {
			return entity.IntentNurtureCheckin
		}
		return entity.IntentFirstContact
	}

	if entity.IsValidIntent(requestedIntent) {
		return entity.Intent(requestedIntent)
	}

	return entity.IntentNurtureCheckin
}
