package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func TestScheduleStepFixesNineOClock(t *testing.T) {
	// Âncora às 23:47: offset 0 ainda é HOJE às 09:00, não amanhã
	anchor := time.Date(2025, 3, 10, 23, 47, 12, 0, time.Local)

	step := scheduleStep(acceptedStep{
		OffsetDays: 0,
		Channel:    entity.ChannelEmail,
		Intent:     entity.IntentFirstContact,
	}, "deal-1", anchor)

	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local), step.DueDate)
}

func TestScheduleStepAddsWholeDays(t *testing.T) {
	anchor := time.Date(2025, 3, 10, 8, 15, 0, 0, time.Local)

	step := scheduleStep(acceptedStep{
		OffsetDays: 3,
		Channel:    entity.ChannelWhatsApp,
		Intent:     entity.IntentNurtureCheckin,
		Goal:       "ver se ficou dúvida",
	}, "deal-1", anchor)

	assert.Equal(t, time.Date(2025, 3, 13, 9, 0, 0, 0, time.Local), step.DueDate)
	assert.Equal(t, "deal-1", step.DealID)
	assert.Equal(t, entity.ChannelWhatsApp, step.Channel)
	assert.Equal(t, entity.IntentNurtureCheckin, step.Intent)
	assert.Equal(t, "ver se ficou dúvida", step.Goal)
	assert.Equal(t, anchor, step.CreatedAt)
	assert.NotEmpty(t, step.ID)

	// Todo passo nasce pendente e sem completed_at
	assert.Equal(t, entity.StepPending, step.Status.State())
	assert.Nil(t, step.Status.CompletedAt())
}

func TestScheduleStepDeterministic(t *testing.T) {
	anchor := time.Date(2025, 6, 1, 14, 30, 0, 0, time.Local)
	c := acceptedStep{OffsetDays: 7, Channel: entity.ChannelSMS, Intent: entity.IntentMeetingReminder}

	a := scheduleStep(c, "deal-x", anchor)
	b := scheduleStep(c, "deal-x", anchor)

	assert.Equal(t, a.DueDate, b.DueDate)
	assert.NotEqual(t, a.ID, b.ID) // ids sempre novos
}
