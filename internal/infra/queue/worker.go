package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
)

// ReminderEmailSender manda o lembrete do passo por email
type ReminderEmailSender interface {
	SendStepReminder(payload ReminderPayload) error
}

// ReminderWhatsAppSender manda o lembrete por WhatsApp
type ReminderWhatsAppSender interface {
	SendStepReminder(payload ReminderPayload) error
}

// Worker consome a fila de lembretes e despacha pelo canal do passo.
// Desacoplado do banco: tudo que precisa vem no payload.
type Worker struct {
	Channel  *amqp.Channel
	Email    ReminderEmailSender
	WhatsApp ReminderWhatsAppSender
}

func NewWorker(ch *amqp.Channel, email ReminderEmailSender, whatsapp ReminderWhatsAppSender) *Worker {
	return &Worker{
		Channel:  ch,
		Email:    email,
		WhatsApp: whatsapp,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ReminderPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido: %s", err)
				// Mensagem podre. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Lembrete do passo %s (canal %s)", payload.StepID, payload.Channel)

			if err := w.dispatch(payload); err != nil {
				log.Printf("❌ [WORKER] Falha ao despachar lembrete: %s", err)
				d.Nack(false, false) // vai para a DLQ
			} else {
				middleware.RecordReminderDispatched(payload.Channel)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker de lembretes aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) dispatch(payload ReminderPayload) error {
	switch payload.Channel {
	case "email":
		if payload.ContactEmail == "" {
			log.Printf("⚠️ Passo %s sem email de contato, ignorando", payload.StepID)
			return nil
		}
		return w.Email.SendStepReminder(payload)

	case "whatsapp":
		if payload.ContactPhone == "" {
			log.Printf("⚠️ Passo %s sem telefone de contato, ignorando", payload.StepID)
			return nil
		}
		return w.WhatsApp.SendStepReminder(payload)

	default:
		// sms e call_script ainda não têm provedor: o lembrete fica só
		// no log do vendedor e a mensagem sai da fila com ACK.
		log.Printf("📋 [WORKER] Lembrete manual: %s / %s para %s (%s)",
			payload.Channel, payload.Intent, payload.ContactName, payload.DealTitle)
		return nil
	}
}
