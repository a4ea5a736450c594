package controller

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"dontverifyme/internal/common"
	"dontverifyme/internal/controller/templates"
	"dontverifyme/internal/email"
	"dontverifyme/internal/queue"
)

var smtpConfig SmtpServerConfig

type SmtpServerConfig struct {
	Hostname string
	Port     int
	Username string
	Password string

	Sender email.User
}

func (c SmtpServerConfig) IsSet() bool {
	return c.Hostname != "" && c.Port > 0 && c.Username != "" && c.Password != "" && c.Sender.Address != ""
}

func (c SmtpServerConfig) VerifyConnection() error {
	addr := fmt.Sprintf("%s:%v", c.Hostname, c.Port)
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return fmt.Errorf("TCP connection failed: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, c.Hostname)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         c.Hostname,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("STARTTLS failed: %w", err)
	}

	auth := smtp.PlainAuth("", c.Username, c.Password, c.Hostname)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("failed to auth with user[%s]: %w", c.Username, err)
	}

	return nil
}

const (
	emailTemplateVerification = "email_verification"
	emailTemplateWelcome      = "welcome"
)

// emailJob is the payload pushed onto the email queue; the worker
// renders the named template with the variables and sends it
type emailJob struct {
	To        string            `json:"to"`
	Title     string            `json:"title"`
	Template  string            `json:"template"`
	Variables map[string]string `json:"variables"`
}

func queueEmail(job emailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to serialise email job: %w", err)
	}
	if _, err := queueInstance.Push(queue.PushOpts{
		Data: data,
		Queue: queue.QueueOpts{
			Stream:  emailQueueStream,
			Subject: emailQueueSubject,
		},
	}); err != nil {
		return fmt.Errorf("failed to push email job: %w", err)
	}
	return nil
}

// StartEmailWorker consumes queued email jobs until the context is
// cancelled. It is expected to run as a goroutine next to the http
// server
func StartEmailWorker(ctx context.Context) error {
	return queueInstance.Subscribe(queue.SubscribeOpts{
		ConsumerId: emailConsumerId,
		Context:    ctx,
		Queue: queue.QueueOpts{
			Stream:  emailQueueStream,
			Subject: emailQueueSubject,
		},
		Handler: handleEmailJob,
	})
}

func handleEmailJob(ctx context.Context, message queue.Message) error {
	var job emailJob
	if err := json.Unmarshal(message.Data, &job); err != nil {
		// A malformed job can never succeed, drop it
		*serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "dropping malformed email job: %s", err)
		return nil
	}
	if !smtpConfig.IsSet() {
		*serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "smtp is not available, dropping email[%s] to user[%s]", job.Template, job.To)
		return nil
	}

	var body []byte
	switch job.Template {
	case emailTemplateVerification:
		body = templates.GetEmailVerificationMessage(
			publicServerUrl.String(),
			job.Variables["verificationCode"],
			job.Variables["remoteAddr"],
			job.Variables["userAgent"],
		)
	case emailTemplateWelcome:
		body = templates.GetWelcomeMessage(publicServerUrl.String())
	default:
		*serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "dropping email job with unknown template[%s]", job.Template)
		return nil
	}

	if err := email.SendSmtp(email.SendSmtpOpts{
		ServiceLogs: *serviceLogs,
		To: []email.User{
			{Address: job.To},
		},
		Sender: smtpConfig.Sender,
		Message: email.Message{
			Title: job.Title,
			Body:  body,
		},
		Smtp: email.SmtpConfig{
			Hostname: smtpConfig.Hostname,
			Port:     smtpConfig.Port,
			Username: smtpConfig.Username,
			Password: smtpConfig.Password,
		},
	}); err != nil {
		return fmt.Errorf("failed to send email[%s] to user[%s]: %w", job.Template, job.To, err)
	}
	return nil
}
