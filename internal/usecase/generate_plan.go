package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/planner"
)

const (
	// DefaultHorizonDays vale quando o caller não manda horizonte (ou
	// manda valor não-positivo).
	DefaultHorizonDays = 14

	// generatorTimeout limita a chamada ao serviço externo. Estourou,
	// tratamos igual a erro do gerador: cai no fallback.
	generatorTimeout = 10 * time.Second
)

type GeneratePlanInput struct {
	DealID      string `json:"deal_id"`
	HorizonDays int    `json:"horizon_days"`
}

type GeneratePlanOutput struct {
	Steps []*entity.OutreachStep `json:"steps"`
	// Source diz de onde veio o plano: "ai" ou "fallback". Vai para as
	// métricas, não é contrato para o front.
	Source string `json:"source"`
}

const (
	PlanSourceAI       = "ai"
	PlanSourceFallback = "fallback"
)

type GeneratePlanUseCase struct {
	DealRepo     entity.DealRepositoryInterface
	ActivityRepo entity.ActivityRepositoryInterface
	StepRepo     entity.OutreachStepRepositoryInterface
	Generator    ContentGenerator
	Clock        Clock

	locks dealLocks
}

func NewGeneratePlanUseCase(
	dealRepo entity.DealRepositoryInterface,
	activityRepo entity.ActivityRepositoryInterface,
	stepRepo entity.OutreachStepRepositoryInterface,
	generator ContentGenerator,
	clock Clock,
) *GeneratePlanUseCase {
	return &GeneratePlanUseCase{
		DealRepo:     dealRepo,
		ActivityRepo: activityRepo,
		StepRepo:     stepRepo,
		Generator:    generator,
		Clock:        clock,
	}
}

// Execute gera e persiste o plano de outreach de um deal.
//
// Fluxo: gerador externo -> validação -> (fallback determinístico se o
// gerador falhou ou nada sobreviveu) -> agendamento -> gravação atômica.
// Falha do gerador nunca chega ao caller; só falha de persistência vira
// erro duro. Plano vazio é resultado válido, não erro.
func (uc *GeneratePlanUseCase) Execute(ctx context.Context, input GeneratePlanInput) (*GeneratePlanOutput, error) {
	horizon := input.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}

	// Duas gerações simultâneas para o mesmo deal gravariam dois lotes
	// duplicados. Serializa por deal dentro do processo.
	unlock := uc.locks.acquire(input.DealID)
	defer unlock()

	deal, err := uc.DealRepo.FindByID(ctx, input.DealID)
	if err != nil {
		return nil, &DomainError{
			Code:    "DEAL_NOT_FOUND",
			Message: "deal inválido: " + err.Error(),
		}
	}

	recentTypes, err := uc.ActivityRepo.RecentTypes(ctx, deal.ID, 10)
	if err != nil {
		// Histórico é só um sinal para o normalizador; sem ele seguimos
		// assumindo que não houve contato.
		log.Printf("⚠️ Falha ao buscar atividades do deal %s: %v", deal.ID, err)
		recentTypes = nil
	}
	hasPriorContact := deal.LastContactAt != nil || len(recentTypes) > 0

	source := PlanSourceAI
	accepted := uc.generateCandidates(ctx, deal, recentTypes, hasPriorContact, horizon)
	if len(accepted) == 0 {
		source = PlanSourceFallback
		accepted = validateCandidates(fallbackCandidates(), deal.Stage, hasPriorContact, horizon)
	}

	anchor := uc.Clock.Now()
	steps := make([]*entity.OutreachStep, 0, len(accepted))
	for _, c := range accepted {
		steps = append(steps, scheduleStep(c, deal.ID, anchor))
	}

	// Plano vazio não persiste nada e não é erro.
	if len(steps) == 0 {
		return &GeneratePlanOutput{Steps: steps, Source: source}, nil
	}

	if err := uc.StepRepo.InsertBatch(ctx, steps); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist outreach plan: " + err.Error(),
		}
	}

	log.Printf("📬 Plano gerado para deal %s: %d passos (source=%s)", deal.ID, len(steps), source)
	return &GeneratePlanOutput{Steps: steps, Source: source}, nil
}

// generateCandidates consulta o gerador externo e devolve o que passou na
// validação. Qualquer falha vira lista vazia: quem decide o fallback é o
// Execute.
func (uc *GeneratePlanUseCase) generateCandidates(ctx context.Context, deal *entity.Deal, recentTypes []string, hasPriorContact bool, horizon int) []acceptedStep {
	genCtx, cancel := context.WithTimeout(ctx, generatorTimeout)
	defer cancel()

	candidates, err := uc.Generator.GenerateSteps(genCtx, planner.GenerateStepsInput{
		DealSummary:  dealSummary(deal),
		Stage:        deal.Stage,
		StageHistory: recentTypes,
		HorizonDays:  horizon,
	})
	if err != nil {
		log.Printf("⚠️ Gerador de planos indisponível para deal %s, usando fallback: %v", deal.ID, err)
		return nil
	}

	return validateCandidates(candidates, deal.Stage, hasPriorContact, horizon)
}

// fallbackCandidates é a cadência fixa usada quando o gerador não ajuda:
// abertura hoje, check-in no dia 3, resumo no dia 7. Passa pelo mesmo
// caminho de validação/normalização que os candidatos externos.
func fallbackCandidates() []planner.StepCandidate {
	day0, day3, day7 := 0, 3, 7
	return []planner.StepCandidate{
		{OffsetDays: &day0, Channel: string(entity.ChannelEmail), Intent: string(entity.IntentFirstContact), Goal: "Apresentar a proposta de valor"},
		{OffsetDays: &day3, Channel: string(entity.ChannelWhatsApp), Intent: string(entity.IntentNurtureCheckin), Goal: "Verificar se ficou alguma dúvida"},
		{OffsetDays: &day7, Channel: string(entity.ChannelEmail), Intent: string(entity.IntentPostCallSummary), Goal: "Consolidar próximos passos"},
	}
}

func dealSummary(deal *entity.Deal) string {
	return fmt.Sprintf("%s — contato %s, estágio %s, valor R$ %.2f",
		deal.Title, deal.ContactName, deal.Stage, float64(deal.ValueCents)/100.0)
}

// dealLocks serializa gerações concorrentes por deal. O mapa não encolhe:
// um mutex por deal ativo é barato perto do custo de um lote duplicado.
type dealLocks struct {
	mu   sync.Mutex
	byID map[string]*sync.Mutex
}

func (l *dealLocks) acquire(dealID string) func() {
	l.mu.Lock()
	if l.byID == nil {
		l.byID = make(map[string]*sync.Mutex)
	}
	m, ok := l.byID[dealID]
	if !ok {
		m = &sync.Mutex{}
		l.byID[dealID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
