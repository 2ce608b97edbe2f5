package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	TemplateWelcome       = "welcome"
	TemplateResetPassword = "reset_password"
)

var templates = template.Must(template.New("emails").Parse(`
{{define "welcome"}}
<html><body>
<h2>Bem-vindo ao Diário de Gratidão, {{.Name}}!</h2>
<p>Sua conta foi criada. Registre um momento de gratidão hoje e comece sua sequência.</p>
</body></html>
{{end}}

{{define "reset_password"}}
<html><body>
<h2>Redefinição de senha</h2>
<p>Olá {{.Name}},</p>
<p>Recebemos um pedido para redefinir sua senha. O link abaixo expira em {{.ExpiresIn}}.</p>
<p><a href="{{.ResetURL}}">Redefinir senha</a></p>
<p>Se você não pediu isso, ignore este email.</p>
</body></html>
{{end}}
`))

// Subjects for known templates.
func SubjectFor(name string) string {
	switch name {
	case TemplateWelcome:
		return "Bem-vindo ao Diário de Gratidão"
	case TemplateResetPassword:
		return "Redefinição de senha"
	default:
		return "Notificação"
	}
}

// RenderHTML renders a named email template with the given data.
func RenderHTML(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
