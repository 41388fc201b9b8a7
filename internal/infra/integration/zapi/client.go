package zapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"time"
)

// Client fala com a API do Z-API para disparar mensagens de WhatsApp.
type Client struct {
	instanceID string
	token      string
	baseURL    string
	http       *http.Client
}

func NewClient(instanceID, token string) *Client {
	return &Client{
		instanceID: instanceID,
		token:      token,
		baseURL:    "https://api.z-api.io",
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SendText(input SendTextInput) error {
	if c.instanceID == "" || c.token == "" {
		log.Println("⚠️ Z-API: credenciais não configuradas")
		return fmt.Errorf("z-api não configurado")
	}

	url := fmt.Sprintf("%s/instances/%s/token/%s/send-text", c.baseURL, c.instanceID, c.token)

	payload := sendTextRequest{
		Phone:   normalizePhone(input.Phone),
		Message: input.Message,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao marshal mensagem: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request z-api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("erro ao enviar whatsapp (status %d): %s", resp.StatusCode, string(body))
	}

	var response sendTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("erro decode z-api: %w", err)
	}

	log.Printf("✅ Z-API: mensagem %s enviada para %s", response.MessageID, payload.Phone)
	return nil
}

// normalizePhone deixa só dígitos e garante o DDI 55 na frente, que é o
// formato que o Z-API espera.
func normalizePhone(phone string) string {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	if len(cleaned) <= 11 {
		cleaned = "55" + cleaned
	}
	return cleaned
}
