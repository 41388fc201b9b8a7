package mail

type ReminderEmailData struct {
	ContactName string
	DealTitle   string
	IntentLabel string
	Goal        string
	DueDate     string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
