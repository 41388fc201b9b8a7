package worker

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// ReminderWorker varre os passos pendentes vencidos e publica um lembrete
// para cada um na fila. O claim é feito no próprio UPDATE (reminder_sent_at),
// então cada passo gera no máximo um lembrete mesmo com o worker
// reiniciando no meio.
type ReminderWorker struct {
	db           *sql.DB
	producer     queue.ReminderProducerInterface
	tickInterval time.Duration
}

func NewReminderWorker(db *sql.DB, producer queue.ReminderProducerInterface) *ReminderWorker {
	return &ReminderWorker{
		db:           db,
		producer:     producer,
		tickInterval: 1 * time.Minute,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	log.Println("🕒 Reminder Worker iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.publishDueReminders(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Reminder Worker encerrado")
			return
		case <-ticker.C:
			w.publishDueReminders(ctx)
		}
	}
}

func (w *ReminderWorker) publishDueReminders(ctx context.Context) {
	query := `
		UPDATE outreach_steps s
		SET reminder_sent_at = NOW()
		FROM deals d
		WHERE s.deal_id = d.id
		  AND s.status = 'pending'
		  AND s.reminder_sent_at IS NULL
		  AND s.due_date <= NOW()
		RETURNING s.id, s.deal_id, s.channel, s.intent, COALESCE(s.goal, ''), s.due_date,
		          d.contact_name, COALESCE(d.contact_email, ''), COALESCE(d.contact_phone, ''), d.title
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Erro ao buscar passos vencidos: %v", err)
		return
	}
	defer rows.Close()

	published := 0
	for rows.Next() {
		var p queue.ReminderPayload

		if err := rows.Scan(
			&p.StepID, &p.DealID, &p.Channel, &p.Intent, &p.Goal, &p.DueDate,
			&p.ContactName, &p.ContactEmail, &p.ContactPhone, &p.DealTitle,
		); err != nil {
			log.Printf("⚠️ Erro ao escanear passo vencido: %v", err)
			continue
		}

		if err := w.producer.PublishReminder(ctx, p); err != nil {
			// Já claimado mas não publicado: fica para intervenção manual,
			// melhor um lembrete perdido que a fila duplicando para sempre.
			log.Printf("❌ Falha ao publicar lembrete do passo %s: %v", p.StepID, err)
			continue
		}
		published++
	}

	if published > 0 {
		log.Printf("✅ %d lembrete(s) publicados na fila", published)
	}
}
