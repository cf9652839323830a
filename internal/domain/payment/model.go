package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
)

// Payment is a plan purchase submitted by a user and confirmed by an admin
type Payment struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Tier      tier.ID         `json:"tier"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Populated on admin listings
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// Payment status
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Payment methods
const (
	MethodBankTransfer = "bank_transfer"
	MethodCard         = "card"
	MethodWallet       = "wallet"
)

// ValidStatus reports whether s is a known payment status
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusFailed
}
