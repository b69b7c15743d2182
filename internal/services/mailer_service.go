package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chasonjia/familytree/internal/apperrors"
	"github.com/chasonjia/familytree/pkg/config"
	"github.com/chasonjia/familytree/pkg/logger"
)

const resendEndpoint = "https://api.resend.com/emails"

// MailerService forwards contact-form submissions to the Resend email API.
type MailerService struct {
	client   *http.Client
	endpoint string
}

func NewMailerService() *MailerService {
	return &MailerService{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: resendEndpoint,
	}
}

type resendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// SendContact emails a contact-form submission to the configured address
func (s *MailerService) SendContact(email, message string) error {
	if email == "" || message == "" {
		return apperrors.Validation("email and message are required")
	}

	mail := config.AppConfig.Mail
	body := resendRequest{
		From:    mail.FromAddress,
		To:      mail.ToAddress,
		Subject: "New Contact From Family Tree Website",
		HTML: fmt.Sprintf("<h3>New Contact</h3><p><strong>Email:</strong> %s</p><p><strong>Message:</strong><br>%s</p>",
			htmlEscaper.Replace(email), htmlEscaper.Replace(message)),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+mail.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.WithError(err).Error("contact mail request failed")
		return apperrors.ErrUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		logger.Errorf("contact mail rejected: status=%d body=%s", resp.StatusCode, detail)
		return apperrors.ErrUpstream
	}

	return nil
}
