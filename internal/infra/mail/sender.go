package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// intentSubjects dá o assunto do email por intent. Intent desconhecido
// cai no genérico.
var intentSubjects = map[string]string{
	"first_contact":        "Vamos conversar, %s?",
	"post_call_summary":    "Resumo da nossa conversa, %s",
	"proposal_followup":    "Sobre a proposta que enviamos, %s",
	"nurture_checkin":      "Tudo certo por aí, %s?",
	"deal_recovery":        "Ainda podemos te ajudar, %s",
	"meeting_confirmation": "Confirmando nossa reunião, %s",
	"meeting_reminder":     "Lembrete da reunião, %s",
	"invoice_gentle":       "Fatura em aberto — %s",
	"invoice_firm":         "Fatura pendente — %s",
	"invoice_final":        "Último aviso de fatura — %s",
}

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendStepReminder envia por email o lembrete de um passo vencido do
// plano de outreach.
func (s *EmailSender) SendStepReminder(payload queue.ReminderPayload) error {
	data := ReminderEmailData{
		ContactName: payload.ContactName,
		DealTitle:   payload.DealTitle,
		IntentLabel: payload.Intent,
		Goal:        payload.Goal,
		DueDate:     payload.DueDate.Format("02/01/2006 15:04"),
	}

	tmplPath := filepath.Join("templates", "outreach_reminder.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	subjectFmt, ok := intentSubjects[payload.Intent]
	if !ok {
		subjectFmt = "Temos novidades para você, %s"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@liguemedicina.com")
	m.SetHeader("To", payload.ContactEmail)
	m.SetHeader("Subject", fmt.Sprintf(subjectFmt, payload.ContactName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
