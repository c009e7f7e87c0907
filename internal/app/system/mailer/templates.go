// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ConfirmationEmailData holds data for the account-confirmation email.
type ConfirmationEmailData struct {
	SiteName   string
	ConfirmURL string
	ExpiresIn  string // e.g., "1 hora"
}

// BuildConfirmationEmail creates the account-confirmation email with both
// HTML and text bodies. The caller sets To.
func BuildConfirmationEmail(data ConfirmationEmailData) Email {
	return Email{
		Subject:  "Confirme Seu E-mail para Ativar Sua Conta",
		TextBody: buildConfirmationText(data),
		HTMLBody: buildConfirmationHTML(data),
	}
}

func buildConfirmationText(data ConfirmationEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Obrigado por se registrar no %s!\n\n", data.SiteName))
	buf.WriteString("Acesse o link abaixo para ativar sua conta:\n")
	buf.WriteString(data.ConfirmURL + "\n\n")
	buf.WriteString(fmt.Sprintf("O link expira em %s.\n", data.ExpiresIn))
	return buf.String()
}

func buildConfirmationHTML(data ConfirmationEmailData) string {
	tmpl := template.Must(template.New("confirmation").Parse(confirmationHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const confirmationHTMLTemplate = `<p>Obrigado por se registrar no {{.SiteName}}! Por favor, clique no link abaixo para ativar sua conta:</p>
<p><a href="{{.ConfirmURL}}">Confirmar Conta Agora</a></p>
<p>O link expira em {{.ExpiresIn}}.</p>`

// InviteEmailData holds data for the trip-invitation email.
type InviteEmailData struct {
	SiteName  string
	OwnerNome string
	Destino   string
}

// BuildInviteEmail creates the notification sent to a guest when a trip
// owner invites them. The caller sets To.
func BuildInviteEmail(data InviteEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Você foi convidado para uma viagem no %s", data.SiteName),
		TextBody: buildInviteText(data),
		HTMLBody: buildInviteHTML(data),
	}
}

func buildInviteText(data InviteEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s convidou você para acompanhar a viagem para %s.\n\n", data.OwnerNome, data.Destino))
	buf.WriteString("Acesse sua conta e responda ao convite na área de convites.\n")
	return buf.String()
}

func buildInviteHTML(data InviteEmailData) string {
	tmpl := template.Must(template.New("invite").Parse(inviteHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const inviteHTMLTemplate = `<p><strong>{{.OwnerNome}}</strong> convidou você para acompanhar a viagem para <strong>{{.Destino}}</strong>.</p>
<p>Acesse sua conta e responda ao convite na área de convites.</p>`
