package email

import (
	"context"
	"errors"
	"testing"

	"github.com/kellerh/ai-procurement/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sendFunc func(m *gomail.Message) error
	sent     []*gomail.Message
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	for _, msg := range m {
		if f.sendFunc != nil {
			if err := f.sendFunc(msg); err != nil {
				return err
			}
		}
		f.sent = append(f.sent, msg)
	}
	return nil
}

type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(rfp *models.RFP) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func approvedRFP(suppliers ...models.Supplier) *models.RFP {
	r := models.NewRFP("req-1", "RFP for CRM Platform", models.CategorySoftware, "content")
	if err := r.Transition(models.RFPStatusApproved); err != nil {
		panic(err)
	}
	r.Suppliers = suppliers
	return r
}

func TestSender_SendToSuppliers_AllSucceed(t *testing.T) {
	dialer := &fakeDialer{}
	sender := NewSenderWithDialer(dialer, &fakeRenderer{}, "procurement@company.com", zap.NewNop())
	rfp := approvedRFP(
		models.Supplier{Name: "Acme", Email: "a@acme.example"},
		models.Supplier{Name: "Globex", Email: "b@globex.example"},
	)

	success, err := sender.SendToSuppliers(context.Background(), rfp)

	require.NoError(t, err)
	assert.True(t, success)
	assert.Len(t, dialer.sent, 2)
	assert.Equal(t, models.RFPStatusSent, rfp.Status)
	assert.NotNil(t, rfp.SentDate)
}

func TestSender_SendToSuppliers_OneFailureDoesNotAbortTheRest(t *testing.T) {
	dialer := &fakeDialer{
		sendFunc: func(m *gomail.Message) error {
			if m.GetHeader("To")[0] == "a@acme.example" {
				return errors.New("mailbox unavailable")
			}
			return nil
		},
	}
	sender := NewSenderWithDialer(dialer, &fakeRenderer{}, "procurement@company.com", zap.NewNop())
	rfp := approvedRFP(
		models.Supplier{Name: "Acme", Email: "a@acme.example"},
		models.Supplier{Name: "Globex", Email: "b@globex.example"},
	)

	success, err := sender.SendToSuppliers(context.Background(), rfp)

	require.NoError(t, err)
	assert.False(t, success, "overall success is the AND of per-supplier outcomes")
	assert.Len(t, dialer.sent, 1, "remaining suppliers still receive the RFP")
	assert.Equal(t, models.RFPStatusApproved, rfp.Status, "status is not rolled forward on partial failure")
	assert.Nil(t, rfp.SentDate)
}

func TestSender_SendToSuppliers_RefusesUnapprovedRFP(t *testing.T) {
	dialer := &fakeDialer{}
	sender := NewSenderWithDialer(dialer, &fakeRenderer{}, "procurement@company.com", zap.NewNop())
	rfp := models.NewRFP("req-1", "RFP for CRM Platform", models.CategorySoftware, "content")
	rfp.Suppliers = []models.Supplier{{Name: "Acme", Email: "a@acme.example"}}

	success, err := sender.SendToSuppliers(context.Background(), rfp)

	require.NoError(t, err)
	assert.False(t, success)
	assert.Empty(t, dialer.sent)
	assert.Equal(t, models.RFPStatusPendingApproval, rfp.Status)
}

func TestSender_SendToSuppliers_NoSuppliers(t *testing.T) {
	dialer := &fakeDialer{}
	sender := NewSenderWithDialer(dialer, &fakeRenderer{}, "procurement@company.com", zap.NewNop())

	success, err := sender.SendToSuppliers(context.Background(), approvedRFP())

	require.NoError(t, err)
	assert.False(t, success)
	assert.Empty(t, dialer.sent)
}

func TestSender_SendToSuppliers_RendererFailureFallsBackToText(t *testing.T) {
	dialer := &fakeDialer{}
	sender := NewSenderWithDialer(dialer, &fakeRenderer{err: errors.New("font missing")}, "procurement@company.com", zap.NewNop())
	rfp := approvedRFP(models.Supplier{Name: "Acme", Email: "a@acme.example"})

	success, err := sender.SendToSuppliers(context.Background(), rfp)

	require.NoError(t, err)
	assert.True(t, success, "a renderer failure downgrades the attachment, it does not block delivery")
	assert.Len(t, dialer.sent, 1)
}

func TestSender_SendToSuppliers_ContextCancelled(t *testing.T) {
	dialer := &fakeDialer{}
	sender := NewSenderWithDialer(dialer, &fakeRenderer{}, "procurement@company.com", zap.NewNop())
	rfp := approvedRFP(models.Supplier{Name: "Acme", Email: "a@acme.example"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	success, err := sender.SendToSuppliers(ctx, rfp)

	require.Error(t, err)
	assert.False(t, success)
	assert.Empty(t, dialer.sent)
}

func TestSender_MessageHeaders(t *testing.T) {
	dialer := &fakeDialer{}
	sender := NewSenderWithDialer(dialer, &fakeRenderer{}, "procurement@company.com", zap.NewNop())
	rfp := approvedRFP(models.Supplier{Name: "Acme", Email: "a@acme.example", ContactPerson: "Jordan Lee"})

	_, err := sender.SendToSuppliers(context.Background(), rfp)
	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)

	msg := dialer.sent[0]
	assert.Equal(t, []string{"procurement@company.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"a@acme.example"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Request for Proposal: RFP for CRM Platform"}, msg.GetHeader("Subject"))
}
