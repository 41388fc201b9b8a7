package planner

// GenerateStepsInput é o resumo do deal enviado ao serviço de geração.
type GenerateStepsInput struct {
	DealSummary  string   `json:"deal_summary"`
	Stage        string   `json:"stage"`
	StageHistory []string `json:"stage_history,omitempty"`
	HorizonDays  int      `json:"horizon_days"`
}

// StepCandidate é um passo proposto pelo gerador, ainda sem validação.
// OffsetDays é ponteiro porque o serviço é não-confiável: o campo pode
// simplesmente não vir no JSON, e ausente != zero.
type StepCandidate struct {
	OffsetDays *int   `json:"offset_days"`
	Channel    string `json:"channel"`
	Intent     string `json:"intent"`
	Goal       string `json:"goal,omitempty"`
}

type generateStepsRequest struct {
	DealSummary  string   `json:"deal_summary"`
	Stage        string   `json:"stage"`
	StageHistory []string `json:"stage_history,omitempty"`
	HorizonDays  int      `json:"horizon_days"`
}

type generateStepsResponse struct {
	Steps []StepCandidate `json:"steps"`
}
