package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrStepNotFound = errors.New("outreach step não encontrado")

// Channel é o meio de contato de um passo de outreach
type Channel string

const (
	ChannelEmail      Channel = "email"
	ChannelWhatsApp   Channel = "whatsapp"
	ChannelSMS        Channel = "sms"
	ChannelCallScript Channel = "call_script"
)

func IsValidChannel(s string) bool {
	switch Channel(s) {
	case ChannelEmail, ChannelWhatsApp, ChannelSMS, ChannelCallScript:
		return true
	}
	return false
}

// Intent é o propósito canônico da comunicação
type Intent string

const (
	IntentFirstContact        Intent = "first_contact"
	IntentPostCallSummary     Intent = "post_call_summary"
	IntentProposalFollowup    Intent = "proposal_followup"
	IntentNurtureCheckin      Intent = "nurture_checkin"
	IntentDealRecovery        Intent = "deal_recovery"
	IntentMeetingConfirmation Intent = "meeting_confirmation"
	IntentMeetingReminder     Intent = "meeting_reminder"
	IntentInvoiceGentle       Intent = "invoice_gentle"
	IntentInvoiceFirm         Intent = "invoice_firm"
	IntentInvoiceFinal        Intent = "invoice_final"
)

func IsValidIntent(s string) bool {
	switch Intent(s) {
	case IntentFirstContact, IntentPostCallSummary, IntentProposalFollowup,
		IntentNurtureCheckin, IntentDealRecovery, IntentMeetingConfirmation,
		IntentMeetingReminder, IntentInvoiceGentle, IntentInvoiceFirm,
		IntentInvoiceFinal:
		return true
	}
	return false
}

type StepState string

const (
	StepPending StepState = "pending"
	StepDone    StepState = "done"
	StepSkipped StepState = "skipped"
)

func ParseStepState(s string) (StepState, error) {
	switch StepState(s) {
	case StepPending, StepDone, StepSkipped:
		return StepState(s), nil
	}
	return "", fmt.Errorf("status inválido: %q", s)
}

// StepStatus amarra o estado ao timestamp de conclusão. Pending nunca
// carrega timestamp e done/skipped sempre carregam, então a regra
// "completed_at preenchido <=> status != pending" não depende de disciplina
// do chamador.
type StepStatus struct {
	state       StepState
	completedAt *time.Time
}

func PendingStatus() StepStatus {
	return StepStatus{state: StepPending}
}

func DoneStatus(at time.Time) StepStatus {
	return StepStatus{state: StepDone, completedAt: &at}
}

func SkippedStatus(at time.Time) StepStatus {
	return StepStatus{state: StepSkipped, completedAt: &at}
}

// StatusFromRow reconstrói o StepStatus a partir das colunas do banco,
// rejeitando combinações que violam o invariante.
func StatusFromRow(state string, completedAt *time.Time) (StepStatus, error) {
	st, err := ParseStepState(state)
	if err != nil {
		return StepStatus{}, err
	}
	if st == StepPending {
		if completedAt != nil {
			return StepStatus{}, fmt.Errorf("step pending com completed_at preenchido")
		}
		return PendingStatus(), nil
	}
	if completedAt == nil {
		return StepStatus{}, fmt.Errorf("step %s sem completed_at", st)
	}
	return StepStatus{state: st, completedAt: completedAt}, nil
}

func (s StepStatus) State() StepState { return s.state }

func (s StepStatus) IsPending() bool { return s.state == StepPending }

// CompletedAt devolve uma cópia para o ponteiro interno não vazar
func (s StepStatus) CompletedAt() *time.Time {
	if s.completedAt == nil {
		return nil
	}
	at := *s.completedAt
	return &at
}

// OutreachStep é um passo agendado do plano de outreach de um deal.
// O deal é dono do passo mas nunca é alterado por este módulo.
type OutreachStep struct {
	ID        string
	DealID    string
	DueDate   time.Time
	Channel   Channel
	Intent    Intent
	Goal      string
	Status    StepStatus
	CreatedAt time.Time
}

// MarshalJSON achata o StepStatus no formato de wire:
// status como string e completed_at opcional.
func (s OutreachStep) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          string     `json:"id"`
		DealID      string     `json:"deal_id"`
		DueDate     time.Time  `json:"due_date"`
		Channel     Channel    `json:"channel"`
		Intent      Intent     `json:"intent"`
		Goal        string     `json:"goal,omitempty"`
		Status      StepState  `json:"status"`
		CompletedAt *time.Time `json:"completed_at,omitempty"`
		CreatedAt   time.Time  `json:"created_at"`
	}{
		ID:          s.ID,
		DealID:      s.DealID,
		DueDate:     s.DueDate,
		Channel:     s.Channel,
		Intent:      s.Intent,
		Goal:        s.Goal,
		Status:      s.Status.State(),
		CompletedAt: s.Status.CompletedAt(),
		CreatedAt:   s.CreatedAt,
	})
}

type OutreachStepRepositoryInterface interface {
	// InsertBatch grava todos os passos em uma única transação.
	// Ou entra tudo, ou não entra nada.
	InsertBatch(ctx context.Context, steps []*OutreachStep) error

	// SetStatus aplica a transição de status mantendo o invariante do
	// completed_at. Retorna ErrStepNotFound se o id não existir.
	SetStatus(ctx context.Context, stepID string, state StepState) (*OutreachStep, error)

	// ListByDeal retorna os passos ordenados por due_date e created_at.
	ListByDeal(ctx context.Context, dealID string) ([]*OutreachStep, error)
}
