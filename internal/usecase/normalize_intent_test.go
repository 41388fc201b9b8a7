package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func TestNormalizeIntentFirstContactByStage(t *testing.T) {
	cases := []struct {
		name            string
		stage           string
		hasPriorContact bool
		want            entity.Intent
	}{
		{"stage new mantém first_contact", "new", false, entity.IntentFirstContact},
		{"stage qualified vira check-in", "qualified", false, entity.IntentNurtureCheckin},
		{"stage proposal sent vira followup", "proposal sent", false, entity.IntentProposalFollowup},
		{"stage won vira resumo", "won", false, entity.IntentPostCallSummary},
		{"stage lost vira recuperação", "lost", false, entity.IntentDealRecovery},
		{"stage desconhecido com contato prévio vira check-in", "negotiation", true, entity.IntentNurtureCheckin},
		{"stage desconhecido sem contato mantém first_contact", "negotiation", false, entity.IntentFirstContact},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeIntent(tc.stage, "first_contact", tc.hasPriorContact)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeIntentStageLabelTolerance(t *testing.T) {
	// Maiúsculas e espaço/underscore não podem mudar o resultado
	assert.Equal(t, entity.IntentProposalFollowup, NormalizeIntent("Proposal Sent", "first_contact", false))
	assert.Equal(t, entity.IntentProposalFollowup, NormalizeIntent("proposal_sent", "first_contact", false))
	assert.Equal(t, entity.IntentProposalFollowup, NormalizeIntent("  PROPOSAL SENT  ", "first_contact", false))
	assert.Equal(t, entity.IntentDealRecovery, NormalizeIntent("Lost", "first_contact", true))
}

func TestNormalizeIntentDefaults(t *testing.T) {
	// Intent ausente cai no default seguro
	assert.Equal(t, entity.IntentNurtureCheckin, NormalizeIntent("new", "", false))

	// Intent fora do vocabulário é coagido ao default
	assert.Equal(t, entity.IntentNurtureCheckin, NormalizeIntent("new", "sell_hard", false))
	assert.Equal(t, entity.IntentNurtureCheckin, NormalizeIntent("won", "FIRST_CONTACT", true))
}

func TestNormalizeIntentPassThrough(t *testing.T) {
	// Intents válidos que não são first_contact passam direto,
	// independente de estágio e contato prévio
	valid := []entity.Intent{
		entity.IntentPostCallSummary,
		entity.IntentProposalFollowup,
		entity.IntentNurtureCheckin,
		entity.IntentDealRecovery,
		entity.IntentMeetingConfirmation,
		entity.IntentMeetingReminder,
		entity.IntentInvoiceGentle,
		entity.IntentInvoiceFirm,
		entity.IntentInvoiceFinal,
	}

	for _, intent := range valid {
		for _, stage := range []string{"new", "qualified", "proposal_sent", "won", "lost", "whatever"} {
			assert.Equal(t, intent, NormalizeIntent(stage, string(intent), true))
			assert.Equal(t, intent, NormalizeIntent(stage, string(intent), false))
		}
	}
}

func TestNormalizeIntentNeverLeavesVocabulary(t *testing.T) {
	stages := []string{"", "new", "qualified", "proposal sent", "won", "lost", "Negotiation", "???"}
	intents := []string{"", "first_contact", "nurture_checkin", "invoice_final", "garbage", "FIRST_CONTACT", "deal recovery"}

	for _, stage := range stages {
		for _, intent := range intents {
			for _, prior := range []bool{true, false} {
				got := NormalizeIntent(stage, intent, prior)
				assert.True(t, entity.IsValidIntent(string(got)),
					"normalize(%q, %q, %v) vazou %q", stage, intent, prior, got)
			}
		}
	}
}
