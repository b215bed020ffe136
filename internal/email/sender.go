// Package email delivers approved RFPs to suppliers over SMTP.
package email

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kellerh/ai-procurement/internal/models"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Renderer renders an RFP into an attachable document
type Renderer interface {
	Render(rfp *models.RFP) ([]byte, error)
}

// Dialer sends assembled messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Config holds SMTP settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender sends RFP documents to suppliers
type Sender struct {
	dialer   Dialer
	renderer Renderer
	from     string
	logger   *zap.Logger
}

// NewSender creates an SMTP-backed sender
func NewSender(cfg Config, renderer Renderer, logger *zap.Logger) *Sender {
	return &Sender{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		renderer: renderer,
		from:     cfg.From,
		logger:   logger,
	}
}

// NewSenderWithDialer creates a sender with a custom dialer
func NewSenderWithDialer(dialer Dialer, renderer Renderer, from string, logger *zap.Logger) *Sender {
	return &Sender{
		dialer:   dialer,
		renderer: renderer,
		from:     from,
		logger:   logger,
	}
}

// SendToSuppliers sends the RFP to every supplier in list order, one at a
// time. One supplier failing does not abort the rest; the returned
// boolean is the logical AND of all per-supplier outcomes. On overall
// success the RFP transitions to SENT and its sent date is stamped; on
// any failure the status stays APPROVED.
func (s *Sender) SendToSuppliers(ctx context.Context, rfp *models.RFP) (bool, error) {
	if rfp.Status != models.RFPStatusApproved {
		s.logger.Warn("Refusing to send RFP that is not approved",
			zap.String("rfp_id", rfp.ID),
			zap.String("status", rfp.Status.String()))
		return false, nil
	}
	if len(rfp.Suppliers) == 0 {
		s.logger.Warn("No suppliers specified for RFP", zap.String("rfp_id", rfp.ID))
		return false, nil
	}

	success := true
	for _, supplier := range rfp.Suppliers {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		msg := s.buildMessage(rfp, supplier)
		if err := s.dialer.DialAndSend(msg); err != nil {
			s.logger.Error("Failed to send RFP to supplier",
				zap.String("rfp_id", rfp.ID),
				zap.String("supplier_email", supplier.Email),
				zap.Error(err))
			success = false
			continue
		}

		s.logger.Info("RFP sent to supplier",
			zap.String("rfp_id", rfp.ID),
			zap.String("supplier_email", supplier.Email))
	}

	if success {
		if err := rfp.Transition(models.RFPStatusSent); err != nil {
			return false, err
		}
		now := time.Now()
		rfp.SentDate = &now
	}

	return success, nil
}

// buildMessage assembles the email for one supplier, attaching the
// rendered PDF or falling back to a plain-text attachment when the
// renderer fails.
func (s *Sender) buildMessage(rfp *models.RFP, supplier models.Supplier) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", supplier.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Request for Proposal: %s", rfp.Title))

	recipient := supplier.ContactPerson
	if recipient == "" {
		recipient = supplier.Name
	}

	msg.SetBody("text/plain", fmt.Sprintf(`Dear %s,

Please find attached our Request for Proposal for %s.

We look forward to your submission.

Best regards,
Procurement Team
`, recipient, rfp.Title))

	document, err := s.renderer.Render(rfp)
	if err != nil {
		s.logger.Error("Failed to render RFP document, attaching plain text",
			zap.String("rfp_id", rfp.ID),
			zap.Error(err))
		attachBytes(msg, fmt.Sprintf("RFP_%s.txt", rfp.ID), []byte(rfp.Content))
		return msg
	}

	attachBytes(msg, fmt.Sprintf("RFP_%s.pdf", rfp.ID), document)
	return msg
}

func attachBytes(msg *gomail.Message, name string, data []byte) {
	msg.Attach(name, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}))
}
