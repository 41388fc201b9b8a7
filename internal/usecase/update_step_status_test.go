package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func TestUpdateStepStatusDone(t *testing.T) {
	ctx := context.Background()

	mockStepRepo := new(MockStepRepository)
	now := time.Now()
	done := &entity.OutreachStep{
		ID:     "step-1",
		DealID: "deal-1",
		Status: entity.DoneStatus(now),
	}
	mockStepRepo.On("SetStatus", ctx, "step-1", entity.StepDone).Return(done, nil)

	uc := NewUpdateStepStatusUseCase(mockStepRepo)

	step, err := uc.Execute(ctx, UpdateStepStatusInput{StepID: "step-1", Status: "done"})

	assert.NoError(t, err)
	assert.Equal(t, entity.StepDone, step.Status.State())
	assert.NotNil(t, step.Status.CompletedAt())

	// Idempotente: repetir "done" não é erro e o invariante segue de pé
	step, err = uc.Execute(ctx, UpdateStepStatusInput{StepID: "step-1", Status: "done"})
	assert.NoError(t, err)
	assert.NotNil(t, step.Status.CompletedAt())
}

func TestUpdateStepStatusBackToPendingClearsCompletedAt(t *testing.T) {
	ctx := context.Background()

	mockStepRepo := new(MockStepRepository)
	pending := &entity.OutreachStep{ID: "step-1", Status: entity.PendingStatus()}
	mockStepRepo.On("SetStatus", ctx, "step-1", entity.StepPending).Return(pending, nil)

	uc := NewUpdateStepStatusUseCase(mockStepRepo)

	step, err := uc.Execute(ctx, UpdateStepStatusInput{StepID: "step-1", Status: "pending"})

	assert.NoError(t, err)
	assert.True(t, step.Status.IsPending())
	assert.Nil(t, step.Status.CompletedAt())
}

func TestUpdateStepStatusUnknownID(t *testing.T) {
	ctx := context.Background()

	mockStepRepo := new(MockStepRepository)
	mockStepRepo.On("SetStatus", ctx, "ghost", entity.StepSkipped).Return(nil, entity.ErrStepNotFound)

	uc := NewUpdateStepStatusUseCase(mockStepRepo)

	step, err := uc.Execute(ctx, UpdateStepStatusInput{StepID: "ghost", Status: "skipped"})

	assert.Nil(t, step)
	assert.True(t, IsDomainError(err))
	domainErr := err.(*DomainError)
	assert.Equal(t, "STEP_NOT_FOUND", domainErr.Code)
}

func TestUpdateStepStatusRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()

	mockStepRepo := new(MockStepRepository)
	uc := NewUpdateStepStatusUseCase(mockStepRepo)

	step, err := uc.Execute(ctx, UpdateStepStatusInput{StepID: "step-1", Status: "cancelled"})

	assert.Nil(t, step)
	assert.True(t, IsDomainError(err))
	domainErr := err.(*DomainError)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	mockStepRepo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}
