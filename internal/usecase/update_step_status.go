package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type UpdateStepStatusInput struct {
	StepID string
	Status string
}

type UpdateStepStatusUseCase struct {
	StepRepo entity.OutreachStepRepositoryInterface
}

func NewUpdateStepStatusUseCase(stepRepo entity.OutreachStepRepositoryInterface) *UpdateStepStatusUseCase {
	return &UpdateStepStatusUseCase{StepRepo: stepRepo}
}

// Execute aplica a transição de status de um passo. Idempotente: marcar
// done duas vezes não é erro. Id inexistente vira DomainError STEP_NOT_FOUND
// (o handler mapeia para 404), nunca erro técnico.
func (uc *UpdateStepStatusUseCase) Execute(ctx context.Context, input UpdateStepStatusInput) (*entity.OutreachStep, error) {
	state, err := entity.ParseStepState(input.Status)
	if err != nil {
		return nil, &DomainError{
			Code:    "INVALID_STATUS",
			Message: err.Error(),
		}
	}

	step, err := uc.StepRepo.SetStatus(ctx, input.StepID, state)
	if err != nil {
		if errors.Is(err, entity.ErrStepNotFound) {
			return nil, &DomainError{
				Code:    "STEP_NOT_FOUND",
				Message: "outreach step não encontrado",
			}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to update step status: " + err.Error(),
		}
	}

	return step, nil
}
