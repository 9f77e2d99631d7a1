package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"youthBanking/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/pobyzaarif/goshortcute"
)

type MailjetConfig struct {
	MailjetBaseURL           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

// MailjetRepository sends transactional mail through the Mailjet v3.1 API.
type MailjetRepository struct {
	cfg    MailjetConfig
	client *http.Client
}

func NewMailjetRepository(cfg MailjetConfig) *MailjetRepository {
	return &MailjetRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type address struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type message struct {
	From     address   `json:"From"`
	To       []address `json:"To"`
	Subject  string    `json:"Subject"`
	TextPart string    `json:"TextPart"`
	HTMLPart string    `json:"HTMLPart"`
}

type sendPayload struct {
	Messages []message `json:"Messages"`
}

func (r *MailjetRepository) SendEmail(ctx context.Context, toName, toEmail, subject, body string) error {
	payload := sendPayload{
		Messages: []message{{
			From: address{
				Email: r.cfg.MailjetSenderEmail,
				Name:  r.cfg.MailjetSenderName,
			},
			To:       []address{{Email: toEmail, Name: toName}},
			Subject:  subject,
			TextPart: body,
			HTMLPart: body,
		}},
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.MailjetBaseURL+"/v3.1/send", bytes.NewReader(payloadByte))
	if err != nil {
		return err
	}

	basicAuth := goshortcute.StringtoBase64Encode(r.cfg.MailjetBasicAuthUsername + ":" + r.cfg.MailjetBasicAuthPassword)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+basicAuth)

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(res.Body)
	logger.Warn("Mailjet rejected message", "status", res.StatusCode, "response", string(bodyBytes))

	return fmt.Errorf("mailer service return negative response %v", res.StatusCode)
}
