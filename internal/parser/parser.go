package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ayioka/momo-analysis/internal/domain"
	"github.com/shopspring/decimal"
)

// ParsedMessage carries the fields extracted from one SMS message. Optional
// fields are nil when the message did not mention them; the record builder
// decides on defaults.
type ParsedMessage struct {
	Category        domain.TransactionCategory
	TransactionID   *string
	Amount          *decimal.Decimal
	Fee             *decimal.Decimal
	SenderName      *string
	ReceiverName    *string
	PhoneNumber     *string
	AgentName       *string
	AgentPhone      *string
	ServiceProvider *string
	BundleType      *string
	BundleSize      *string
	ValidityDays    *int
	TransactionDate *time.Time
	Status          domain.TransactionStatus
	Description     string
	Metadata        map[string]any
}

// Generic fallback patterns for the universal fields. They run for every
// message after the category variants so partially matched messages still
// get best-effort values.
var (
	transactionIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)TxId:?\s*(\w+)`),
		regexp.MustCompile(`(?i)Transaction ID:?\s*(\w+)`),
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Date: (.+?)(?:\.|$)`),
		regexp.MustCompile(`(?i)on (.+?)(?:\.|$)`),
		regexp.MustCompile(`(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})`),
	}
	amountPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d{2})?)\s*RWF`)
	feePattern    = regexp.MustCompile(`(?i)Fee: (\d+(?:\.\d{2})?)\s*RWF`)
)

// Parse classifies one message and extracts its fields. It never fails: a
// message matching no gate comes back as CategoryUnknown with whatever the
// generic pass could recover.
func Parse(message string) ParsedMessage {
	msg := strings.TrimSpace(message)
	out := ParsedMessage{
		Category: domain.CategoryUnknown,
		Status:   domain.StatusCompleted,
	}

	lower := strings.ToLower(msg)
	for _, r := range rules {
		if !r.gate(lower) {
			continue
		}
		r.resolve(lower, &out)
		for _, v := range r.variants {
			if groups := v.pattern.FindStringSubmatch(msg); groups != nil {
				v.extract(groups, &out)
				break
			}
		}
		break
	}

	extractGenericFields(msg, &out)
	return out
}

// ExtractTransactionID pulls a bare transaction identifier token out of a
// message using the same generic patterns as the fallback pass. Duplicate
// detection relies on this matching what Parse would extract.
func ExtractTransactionID(message string) (string, bool) {
	for _, pattern := range transactionIDPatterns {
		if groups := pattern.FindStringSubmatch(message); groups != nil {
			return groups[1], true
		}
	}
	return "", false
}

func extractGenericFields(msg string, out *ParsedMessage) {
	if out.TransactionID == nil {
		if id, ok := ExtractTransactionID(msg); ok {
			setString(&out.TransactionID, id)
		}
	}

	if out.Amount == nil {
		if groups := amountPattern.FindStringSubmatch(msg); groups != nil {
			setDecimal(&out.Amount, groups[1])
		}
	}

	if out.Fee == nil {
		if groups := feePattern.FindStringSubmatch(msg); groups != nil {
			setDecimal(&out.Fee, groups[1])
		}
	}

	if out.TransactionDate == nil {
		for _, pattern := range datePatterns {
			if groups := pattern.FindStringSubmatch(msg); groups != nil {
				// First structural match wins even when the captured text
				// fails to parse as a date.
				setDate(&out.TransactionDate, groups[1])
				break
			}
		}
	}

	if out.Description == "" {
		out.Description = msg
	}
}

func setString(dst **string, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	*dst = &value
}

func setDecimal(dst **decimal.Decimal, raw string) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || value.IsNegative() {
		return
	}
	*dst = &value
}

func setInt(dst **int, raw string) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return
	}
	*dst = &value
}

func setDate(dst **time.Time, raw string) {
	if ts, ok := ParseDate(raw); ok {
		*dst = &ts
	}
}
