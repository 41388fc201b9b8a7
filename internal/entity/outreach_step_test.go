package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepStatusInvariant(t *testing.T) {
	now := time.Now()

	pending := PendingStatus()
	assert.True(t, pending.IsPending())
	assert.Nil(t, pending.CompletedAt())

	done := DoneStatus(now)
	assert.Equal(t, StepDone, done.State())
	assert.NotNil(t, done.CompletedAt())
	assert.True(t, done.CompletedAt().Equal(now))

	skipped := SkippedStatus(now)
	assert.Equal(t, StepSkipped, skipped.State())
	assert.NotNil(t, skipped.CompletedAt())
}

func TestStatusFromRowRejectsInconsistentRows(t *testing.T) {
	now := time.Now()

	// pending com timestamp é linha corrompida
	_, err := StatusFromRow("pending", &now)
	assert.Error(t, err)

	// done sem timestamp idem
	_, err = StatusFromRow("done", nil)
	assert.Error(t, err)

	_, err = StatusFromRow("cancelled", nil)
	assert.Error(t, err)

	status, err := StatusFromRow("skipped", &now)
	assert.NoError(t, err)
	assert.Equal(t, StepSkipped, status.State())

	status, err = StatusFromRow("pending", nil)
	assert.NoError(t, err)
	assert.True(t, status.IsPending())
}

func TestCompletedAtCopyDoesNotLeak(t *testing.T) {
	now := time.Now()
	done := DoneStatus(now)

	first := done.CompletedAt()
	*first = first.Add(48 * time.Hour)

	assert.True(t, done.CompletedAt().Equal(now))
}

func TestOutreachStepJSONShape(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	step := OutreachStep{
		ID:        "step-1",
		DealID:    "deal-1",
		DueDate:   now,
		Channel:   ChannelEmail,
		Intent:    IntentFirstContact,
		Status:    PendingStatus(),
		CreatedAt: now,
	}

	data, err := json.Marshal(step)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "pending", decoded["status"])
	_, hasCompleted := decoded["completed_at"]
	assert.False(t, hasCompleted, "pending não pode expor completed_at")
	_, hasGoal := decoded["goal"]
	assert.False(t, hasGoal, "goal vazio fica fora do JSON")

	step.Status = DoneStatus(now)
	step.Goal = "abrir conversa"
	data, err = json.Marshal(step)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "done", decoded["status"])
	assert.NotEmpty(t, decoded["completed_at"])
	assert.Equal(t, "abrir conversa", decoded["goal"])
}

func TestCanonicalStage(t *testing.T) {
	assert.Equal(t, "proposal_sent", CanonicalStage("Proposal Sent"))
	assert.Equal(t, "proposal_sent", CanonicalStage("proposal_sent"))
	assert.Equal(t, "new", CanonicalStage("  NEW "))
	assert.True(t, IsValidStage("Proposal Sent"))
	assert.False(t, IsValidStage("negotiation"))
}
