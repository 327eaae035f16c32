package out

import "context"

type MailMessage struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

// EventPublisherPort publica eventos de auditoría y correo hacia los
// colaboradores externos. Mejor esfuerzo: los llamadores registran el error
// y siguen, un fallo acá nunca es visible para el usuario.
type EventPublisherPort interface {
	PublishAudit(ctx context.Context, action string, payload map[string]interface{}) error
	PublishMail(ctx context.Context, message MailMessage) error
}
