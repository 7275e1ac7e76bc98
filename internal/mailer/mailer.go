package mailer

import "embed"

const (
	FromName              = "Movies Server"
	maxRetries            = 3
	OTPTemplate           = "otp_code.tmpl"
	ResetPasswordTemplate = "reset_password.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
