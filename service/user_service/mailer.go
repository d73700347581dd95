package user_service

import "log"

// Mailer delivers password reset codes. Production deployments plug in a
// real transport; the default just logs.
type Mailer interface {
	SendPasswordResetCode(email, code string) error
}

type logMailer struct{}

func (logMailer) SendPasswordResetCode(email, code string) error {
	log.Printf("Password reset code for %s: %s", email, code)
	return nil
}
