package ports

import "context"

// ActivationEmail is the job handed to the outbound-mail collaborator after
// a successful registration.
type ActivationEmail struct {
	To       string
	Username string
	Token    string
}

// Mailer delivers a single activation email.
type Mailer interface {
	SendActivation(ctx context.Context, email ActivationEmail) error
}

// MailQueue accepts activation emails for asynchronous delivery, so SMTP
// latency never sits inside the registration request.
type MailQueue interface {
	Enqueue(email ActivationEmail)
}
