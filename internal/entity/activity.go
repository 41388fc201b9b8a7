package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Activity é um registro livre de interação com o deal (ligação, email,
// reunião...). Só existe para histórico, nunca é editada.
type Activity struct {
	ID        string    `json:"id"`
	DealID    string    `json:"deal_id"`
	Type      string    `json:"type"` // call, email, meeting, note...
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewActivity(dealID, actType, note string) (*Activity, error) {
	if dealID == "" {
		return nil, errors.New("deal_id is required")
	}
	if actType == "" {
		return nil, errors.New("type is required")
	}

	return &Activity{
		ID:        uuid.New().String(),
		DealID:    dealID,
		Type:      actType,
		Note:      note,
		CreatedAt: time.Now(),
	}, nil
}

type ActivityRepositoryInterface interface {
	Create(ctx context.Context, activity *Activity) error
	ListByDeal(ctx context.Context, dealID string) ([]*Activity, error)

	// RecentTypes retorna os tipos das últimas atividades do deal,
	// usado como sinal de "já houve contato" no planner.
	RecentTypes(ctx context.Context, dealID string, limit int) ([]string, error)
}
