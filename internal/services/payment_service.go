package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/bizdesk/internal/domain/payment"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
)

// PaymentService implements payment.Service
type PaymentService struct {
	repo   payment.Repository
	users  user.Service
	logger *logger.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(repo payment.Repository, users user.Service, log *logger.Logger) payment.Service {
	return &PaymentService{
		repo:   repo,
		users:  users,
		logger: log,
	}
}

// Create records a pending payment for a paid plan
func (s *PaymentService) Create(ctx context.Context, userID int64, t tier.ID, method, reference string) (*payment.Payment, error) {
	if userID == 0 {
		return nil, errors.NotAuthenticated()
	}
	if !tier.Known(t) {
		return nil, errors.BadRequest("Unknown plan: " + string(t))
	}
	plan := tier.Lookup(t)
	if plan.PriceCents == 0 {
		return nil, errors.BadRequest("The free plan does not need a payment")
	}

	switch method {
	case "":
		method = payment.MethodBankTransfer
	case payment.MethodBankTransfer, payment.MethodCard, payment.MethodWallet:
	default:
		return nil, errors.BadRequest("Unknown payment method: " + method)
	}

	p := &payment.Payment{
		UserID:    userID,
		Tier:      t,
		Amount:    decimal.New(plan.PriceCents, -2),
		Method:    method,
		Reference: strings.TrimSpace(reference),
		Status:    payment.StatusPending,
	}
	if _, err := s.repo.Create(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create payment")
		return nil, errors.PersistenceError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"payment_id": p.ID,
		"user_id":    userID,
		"tier":       t,
		"amount":     p.Amount.StringFixed(2),
	}).Info("Payment submitted")

	return p, nil
}

// List returns the user's payment history
func (s *PaymentService) List(ctx context.Context, userID int64) ([]*payment.Payment, error) {
	payments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return []*payment.Payment{}, err
	}
	return payments, nil
}

// ListAll returns every payment
func (s *PaymentService) ListAll(ctx context.Context) ([]*payment.Payment, error) {
	payments, err := s.repo.ListAll(ctx)
	if err != nil {
		return []*payment.Payment{}, err
	}
	return payments, nil
}

// UpdateStatus settles a payment. Only pending payments change state, and a
// completed payment moves the payer to the purchased plan.
func (s *PaymentService) UpdateStatus(ctx context.Context, id int64, status string) (*payment.Payment, error) {
	if !payment.ValidStatus(status) || status == payment.StatusPending {
		return nil, errors.BadRequest("Invalid payment status: " + status)
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != payment.StatusPending {
		return nil, errors.InvalidOperation("Payment has already been " + p.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update payment")
		return nil, err
	}
	p.Status = status

	if status == payment.StatusCompleted {
		if err := s.users.SetTier(ctx, p.UserID, p.Tier); err != nil {
			return nil, err
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"payment_id": id,
		"user_id":    p.UserID,
		"status":     status,
	}).Info("Payment settled")

	return p, nil
}
