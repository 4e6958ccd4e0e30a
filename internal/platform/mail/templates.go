package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

const passwordResetSubject = "Reset your password"

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	passwordResetText = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/password_reset.txt.tmpl"))
	passwordResetHTML = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/password_reset.html.tmpl"))
)

type renderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

func renderPasswordReset(msg PasswordResetMessage) (*renderedMessage, error) {
	var text, html bytes.Buffer
	if err := passwordResetText.Execute(&text, msg); err != nil {
		return nil, fmt.Errorf("render text body: %w", err)
	}
	if err := passwordResetHTML.Execute(&html, msg); err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}
	return &renderedMessage{Subject: passwordResetSubject, Text: text.String(), HTML: html.String()}, nil
}
