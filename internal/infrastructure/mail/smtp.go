// Package mail implements the outbound-email collaborator over SMTP.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/cinema-app/shop-api/internal/core/ports"
)

const activationSubject = "Account activation"

// Config captures SMTP delivery settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the sender address on every outbound message.
	From string
	// HostURL is the public base URL embedded in activation links.
	HostURL string
}

// SMTPMailer sends activation emails through an SMTP relay.
type SMTPMailer struct {
	client *gomail.Client
	cfg    Config
}

func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	opts := []gomail.Option{gomail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, cfg: cfg}, nil
}

// SendActivation delivers the activation email for a freshly registered
// account.
func (m *SMTPMailer) SendActivation(ctx context.Context, email ports.ActivationEmail) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(activationSubject)
	msg.SetBodyString(gomail.TypeTextPlain, activationBody(m.cfg.HostURL, email))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send activation email: %w", err)
	}
	return nil
}

// ActivationURL builds the link a new user follows to activate their account.
func ActivationURL(hostURL, token string) string {
	return fmt.Sprintf("%s/register/activate/?token=%s", hostURL, token)
}

func activationBody(hostURL string, email ports.ActivationEmail) string {
	return fmt.Sprintf(
		"Your account was successfully created.\nPlease, follow the link to activate:\n\n%s\n",
		ActivationURL(hostURL, email.Token),
	)
}
