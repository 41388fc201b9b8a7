package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrDealNotFound = errors.New("deal não encontrado")

// Estágios conhecidos do funil. O banco guarda o rótulo como veio do
// front (pode vir "Proposal Sent"), a comparação usa CanonicalStage.
const (
	StageNew          = "new"
	StageQualified    = "qualified"
	StageProposalSent = "proposal_sent"
	StageWon          = "won"
	StageLost         = "lost"
)

// CanonicalStage normaliza o rótulo de estágio: minúsculas e espaços
// viram underscore ("Proposal Sent" == "proposal_sent").
func CanonicalStage(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}

func IsValidStage(s string) bool {
	switch CanonicalStage(s) {
	case StageNew, StageQualified, StageProposalSent, StageWon, StageLost:
		return true
	}
	return false
}

// Entidade: Deal (oportunidade do funil de vendas)
type Deal struct {
	ID            string     `json:"id"`
	LeadID        string     `json:"lead_id,omitempty"`
	Title         string     `json:"title"`
	ContactName   string     `json:"contact_name"`
	ContactEmail  string     `json:"contact_email,omitempty"`
	ContactPhone  string     `json:"contact_phone,omitempty"`
	ValueCents    int        `json:"value_cents"`
	Stage         string     `json:"stage"`
	LastContactAt *time.Time `json:"last_contact_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Factory
func NewDeal(leadID, title, contactName, contactEmail, contactPhone string, valueCents int) (*Deal, error) {
	deal := &Deal{
		ID:           uuid.New().String(),
		LeadID:       leadID,
		Title:        title,
		ContactName:  contactName,
		ContactEmail: contactEmail,
		ContactPhone: contactPhone,
		ValueCents:   valueCents,
		Stage:        StageNew,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := deal.Validate(); err != nil {
		return nil, err
	}

	return deal, nil
}

func (d *Deal) Validate() error {
	if d.Title == "" {
		return errors.New("title is required")
	}
	if d.ContactName == "" {
		return errors.New("contact_name is required")
	}
	if d.ValueCents < 0 {
		return errors.New("value_cents must not be negative")
	}
	return nil
}

type DealRepositoryInterface interface {
	Create(ctx context.Context, deal *Deal) error
	FindByID(ctx context.Context, id string) (*Deal, error)
	List(ctx context.Context) ([]*Deal, error)
	Update(ctx context.Context, deal *Deal) error
	UpdateStage(ctx context.Context, id, stage string) error
	TouchLastContact(ctx context.Context, id string, at time.Time) error
}
