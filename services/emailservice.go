package services

import (
	"context"
	"fmt"
	"net/smtp"

	"taskboard/config"
	"taskboard/model"
	"taskboard/store"

	"github.com/rs/zerolog/log"
)

// SendEmail delivers a single HTML mail over SMTP with plain auth.
func SendEmail(cfg *config.Config, to, subject, body string) error {
	if cfg.SMTPHost == "" || cfg.SMTPPort == "" || cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		return fmt.Errorf("incomplete SMTP configuration: host=%q, port=%q, username=%q",
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername)
	}

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	message := "From: " + cfg.EmailFrom + "\n" +
		"To: " + to + "\n" +
		"Subject: " + subject + "\n" +
		mime + "\n" +
		body

	if err := smtp.SendMail(addr, auth, cfg.EmailFrom, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("SMTP send error: %w", err)
	}
	return nil
}

func ConfirmationEmailContent(confURL string) string {
	return `
	<html>
	  <h2>Thank you for signing up!</h2>
	  <p>To finish registration please confirm your email by following the link:</p>
	  <p><a href="` + confURL + `" clicktracking="off">` + confURL + `</a></p>
	  <p><em>If you did not sign up, just ignore this message.</em></p>
	</html>`
}

func InvitationEmailContent(invURL, projectTitle string) string {
	return `
	<html>
	  <h2>You are invited to the project "` + projectTitle + `"</h2>
	  <p>To accept the invitation follow the link:</p>
	  <p><a href="` + invURL + `" clicktracking="off">` + invURL + `</a></p>
	  <p><em>If you do not expect this invitation, just ignore this message.</em></p>
	</html>`
}

func TaskNotificationContent(taskTitle, event string) string {
	return `
	<html>
	  <p>The task "` + taskTitle + `" you are subscribed to was ` + event + `.</p>
	</html>`
}

func SendConfirmationEmail(cfg *config.Config, to, confURL string) error {
	return SendEmail(cfg, to, "Email confirmation", ConfirmationEmailContent(confURL))
}

func SendInvitationEmail(cfg *config.Config, to, invURL, projectTitle string) error {
	return SendEmail(cfg, to, "Project invitation", InvitationEmailContent(invURL, projectTitle))
}

// NotifySubscribers mails every subscriber of the task about an update or
// deletion. Delivery is best-effort: failures are logged and swallowed so
// they never reach the response path.
func NotifySubscribers(ctx context.Context, db store.Store, cfg *config.Config, task *model.Task, event string) {
	if len(task.SubscriberIDs) == 0 || cfg.Env == "test" {
		return
	}
	subject := "Task " + event
	body := TaskNotificationContent(task.Title, event)
	for _, subscriberID := range task.SubscriberIDs {
		subscriber, err := db.GetUser(ctx, subscriberID)
		if err != nil {
			log.Error().Err(err).Str("userId", subscriberID).Msg("notification: subscriber lookup failed")
			continue
		}
		if err := SendEmail(cfg, subscriber.Email, subject, body); err != nil {
			log.Error().Err(err).Str("email", subscriber.Email).Msg("notification: send failed")
		}
	}
}
