package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Todo passo vence às 09:00 locais. Offset 0 é hoje às 09:00 mesmo que o
// plano seja gerado à noite: os passos de um plano ficam comparáveis e
// ordenáveis só pelo dia.
const dueHour = 9

// scheduleStep converte o offset relativo do candidato em um OutreachStep
// com data absoluta, id novo e status pending.
func scheduleStep(c acceptedStep, dealID string, anchor time.Time) *entity.OutreachStep {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), dueHour, 0, 0, 0, anchor.Location())

	return &entity.OutreachStep{
		ID:        uuid.New().String(),
		DealID:    dealID,
		DueDate:   day.AddDate(0, 0, c.OffsetDays),
		Channel:   c.Channel,
		Intent:    c.Intent,
		Goal:      c.Goal,
		Status:    entity.PendingStatus(),
		CreatedAt: anchor,
	}
}
