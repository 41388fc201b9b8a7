package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fala com o serviço externo de geração de planos de outreach.
// A resposta é tratada como não-confiável: quem valida é o usecase.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GenerateSteps: pede a lista de candidatos ao serviço externo.
func (c *Client) GenerateSteps(ctx context.Context, input GenerateStepsInput) ([]StepCandidate, error) {
	url := fmt.Sprintf("%s/v1/outreach-plans", c.baseURL)

	payload := generateStepsRequest{
		DealSummary:  input.DealSummary,
		Stage:        input.Stage,
		StageHistory: input.StageHistory,
		HorizonDays:  input.HorizonDays,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao marshal plano: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request planner: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("planner recusou a geração (status %d): %s", resp.StatusCode, string(body))
	}

	var response generateStepsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro decode planner: %w", err)
	}

	return response.Steps, nil
}
