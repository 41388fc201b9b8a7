package mail

import (
	"fmt"
	"log"

	"github.com/xavierca1/ligue-crm/internal/infra/integration/zapi"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// intentMessages é o texto curto de WhatsApp por intent.
var intentMessages = map[string]string{
	"first_contact":        "Olá %s! Aqui é da Ligue. Podemos conversar sobre %s?",
	"post_call_summary":    "Oi %s! Segue um resumo da nossa conversa sobre %s. Qualquer dúvida é só chamar.",
	"proposal_followup":    "Oi %s! Conseguiu avaliar a proposta de %s? Estou à disposição.",
	"nurture_checkin":      "Oi %s, tudo bem? Passando para saber se podemos ajudar em algo com %s.",
	"deal_recovery":        "Oi %s! Sentimos sua falta. Que tal retomarmos a conversa sobre %s?",
	"meeting_confirmation": "Oi %s! Confirmando nossa reunião sobre %s. Pode confirmar presença?",
	"meeting_reminder":     "Oi %s! Lembrete da nossa reunião sobre %s.",
	"invoice_gentle":       "Oi %s! Identificamos uma fatura em aberto de %s. Precisa de ajuda?",
	"invoice_firm":         "Oi %s, a fatura de %s segue pendente. Podemos resolver juntos?",
	"invoice_final":        "Oi %s, último aviso sobre a fatura de %s. Fale com a gente hoje.",
}

type WhatsAppSender struct {
	client *zapi.Client
}

func NewWhatsAppSender(client *zapi.Client) *WhatsAppSender {
	return &WhatsAppSender{
		client: client,
	}
}

func (s *WhatsAppSender) SendStepReminder(payload queue.ReminderPayload) error {
	if payload.ContactPhone == "" || payload.ContactName == "" {
		log.Printf("⚠️ WhatsApp: dados incompletos para envio (phone: %s, name: %s)",
			payload.ContactPhone, payload.ContactName)
		return nil
	}

	msgFmt, ok := intentMessages[payload.Intent]
	if !ok {
		msgFmt = "Oi %s! Temos novidades sobre %s."
	}

	input := zapi.SendTextInput{
		Phone:   payload.ContactPhone,
		Message: fmt.Sprintf(msgFmt, payload.ContactName, payload.DealTitle),
	}

	if err := s.client.SendText(input); err != nil {
		log.Printf("⚠️ WhatsApp (Z-API): falha ao enviar para %s: %v", payload.ContactPhone, err)
		return nil
	}

	return nil
}
