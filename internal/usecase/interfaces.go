package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-crm/internal/infra/integration/planner"
)

// ContentGenerator é o serviço externo que propõe os passos do plano.
// Tudo que ele devolve passa pela validação antes de virar OutreachStep.
type ContentGenerator interface {
	GenerateSteps(ctx context.Context, input planner.GenerateStepsInput) ([]planner.StepCandidate, error)
}

// Clock injetável para os testes controlarem a data-âncora do agendamento.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
