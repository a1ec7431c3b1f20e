package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionCategory classifies a mobile-money SMS into one of the known
// transaction types. Messages that match no known phrasing are stored as
// CategoryUnknown rather than rejected.
type TransactionCategory string

const (
	CategoryIncomingMoney          TransactionCategory = "incoming_money"
	CategoryPaymentToCodeHolder    TransactionCategory = "payment_to_code_holder"
	CategoryTransferToMobile       TransactionCategory = "transfer_to_mobile"
	CategoryBankDeposit            TransactionCategory = "bank_deposit"
	CategoryAirtimeBillPayment     TransactionCategory = "airtime_bill_payment"
	CategoryCashPowerBillPayment   TransactionCategory = "cash_power_bill_payment"
	CategoryThirdPartyTransaction  TransactionCategory = "third_party_transaction"
	CategoryAgentWithdrawal        TransactionCategory = "agent_withdrawal"
	CategoryBankTransfer           TransactionCategory = "bank_transfer"
	CategoryInternetBundlePurchase TransactionCategory = "internet_bundle_purchase"
	CategoryVoiceBundlePurchase    TransactionCategory = "voice_bundle_purchase"
	CategoryUnknown                TransactionCategory = "unknown"
)

// TransactionStatus reflects the lifecycle state reported in the message
// text. The parser does not infer state beyond the completed default.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// Transaction is the structured outcome of classifying one SMS message.
// RawMessage holds the verbatim text and is never mutated after creation;
// it is the basis for duplicate detection. Optional fields stay nil when
// the message did not mention them.
type Transaction struct {
	ID              uuid.UUID           `json:"id"`
	RawMessage      string              `json:"raw_message"`
	Category        TransactionCategory `json:"category"`
	TransactionID   *string             `json:"transaction_id,omitempty"`
	Amount          *decimal.Decimal    `json:"amount,omitempty"`
	Fee             *decimal.Decimal    `json:"fee,omitempty"`
	SenderName      *string             `json:"sender_name,omitempty"`
	ReceiverName    *string             `json:"receiver_name,omitempty"`
	PhoneNumber     *string             `json:"phone_number,omitempty"`
	AgentName       *string             `json:"agent_name,omitempty"`
	AgentPhone      *string             `json:"agent_phone,omitempty"`
	ServiceProvider *string             `json:"service_provider,omitempty"`
	BundleType      *string             `json:"bundle_type,omitempty"`
	BundleSize      *string             `json:"bundle_size,omitempty"`
	ValidityDays    *int                `json:"validity_days,omitempty"`
	TransactionDate time.Time           `json:"transaction_date"`
	Status          TransactionStatus   `json:"status"`
	Description     string              `json:"description"`
	Metadata        map[string]any      `json:"metadata,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
