package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Text/HTML are optional when Template is set; the worker renders the
// template with Data in that case.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome" or "reset_password"
	Data     map[string]any `json:"data,omitempty"`
}
