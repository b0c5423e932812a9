package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/alumnet/reunion/internal/config"
	"github.com/alumnet/reunion/internal/mailer"
	"github.com/alumnet/reunion/pkg/constant"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/mbeoliero/kit/log"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailService relays admin-composed email through the configured
// provider. There is no retry; a failed relay surfaces to the caller.
type EmailService struct {
	provider mailer.Provider
	from     string
}

// NewEmailService creates a new EmailService
func NewEmailService(cfg *config.Config, provider mailer.Provider) *EmailService {
	return &EmailService{
		provider: provider,
		from:     cfg.Email.From,
	}
}

// SendEmailRequest represents an outbound email request
type SendEmailRequest struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendEmailResult carries the relay message id and recipient count
type SendEmailResult struct {
	Id         string `json:"id"`
	Recipients int    `json:"recipients"`
}

// validateRecipients normalizes and checks the recipient list
func validateRecipients(to []string) ([]string, error) {
	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		if !emailPattern.MatchString(addr) {
			return nil, errcode.ErrBadEmailAddress
		}
		recipients = append(recipients, addr)
	}
	if len(recipients) == 0 {
		return nil, errcode.ErrNoRecipients
	}
	if len(recipients) > constant.MaxEmailRecipients {
		return nil, errcode.ErrTooManyRecipients
	}
	return recipients, nil
}

// Send relays one email. Callers are admin gated at the router.
func (s *EmailService) Send(ctx context.Context, senderId string, req *SendEmailRequest) (*SendEmailResult, error) {
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.HTML) == "" {
		return nil, errcode.ErrInvalidParam
	}

	recipients, err := validateRecipients(req.To)
	if err != nil {
		return nil, err
	}

	result, err := s.provider.Send(ctx, &mailer.SendRequest{
		From:    s.from,
		To:      recipients,
		Subject: req.Subject,
		HTML:    req.HTML,
	})
	if err != nil {
		log.CtxError(ctx, "email relay failed: sender=%s, recipients=%d, err=%v",
			senderId, len(recipients), err)
		return nil, errcode.ErrEmailRelayFailed.Wrap(err)
	}

	log.CtxInfo(ctx, "email sent: sender=%s, recipients=%d, relay_id=%s",
		senderId, len(recipients), result.Id)
	return &SendEmailResult{Id: result.Id, Recipients: len(recipients)}, nil
}
