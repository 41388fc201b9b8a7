package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead não encontrado")

type Lead struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Source    string    `json:"source,omitempty"`
	Status    string    `json:"status"` // PENDING, QUALIFIED, CONVERTED, DISCARDED
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewLead(email, name, phone, company, source string) (*Lead, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	return &Lead{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Phone:     phone,
		Company:   company,
		Source:    source,
		Status:    "PENDING",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

type LeadRepositoryInterface interface {
	// Upsert por email: captura repetida do mesmo lead só atualiza os
	// campos preenchidos, sem duplicar a linha.
	Upsert(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context) ([]*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
