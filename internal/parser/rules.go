package parser

import (
	"regexp"
	"strings"

	"github.com/ayioka/momo-analysis/internal/domain"
)

// variant pairs one recognized phrasing with the extractor that knows which
// capture group carries which field for that phrasing. Variants are tried in
// order; the first structural match wins.
type variant struct {
	pattern *regexp.Regexp
	extract func(groups []string, out *ParsedMessage)
}

// rule gates one category. Gates are cheap keyword checks evaluated against
// the lowercased message; resolve assigns the category and any per-category
// defaults before the variants run.
type rule struct {
	gate     func(lower string) bool
	resolve  func(lower string, out *ParsedMessage)
	variants []variant
}

var (
	rePaymentCompleted = regexp.MustCompile(`payment.*completed`)
	reBundlePurchased  = regexp.MustCompile(`bundle.*purchased|purchased.*bundle`)
	reTransferOrSent   = regexp.MustCompile(`transfer.*to|sent.*to`)
	reBankDeposit      = regexp.MustCompile(`bank.*deposit|deposit.*bank`)
	reTransferredBank  = regexp.MustCompile(`transferred.*bank`)
	reLongDigitRun     = regexp.MustCompile(`[0-9]{9,}`)
)

func assigns(category domain.TransactionCategory) func(string, *ParsedMessage) {
	return func(_ string, out *ParsedMessage) {
		out.Category = category
	}
}

// rules is evaluated top to bottom; the order is a compatibility contract
// because several gates overlap and the first match decides the category.
var rules = []rule{
	{
		gate: func(lower string) bool {
			return (strings.Contains(lower, "received") || strings.Contains(lower, "receive")) &&
				strings.Contains(lower, "rwf")
		},
		resolve: assigns(domain.CategoryIncomingMoney),
		variants: []variant{
			{
				pattern: regexp.MustCompile(`(?i)You have received (\d+(?:\.\d{2})?)\s*RWF from (.+?)\. Transaction ID: (\w+)\. Date: (.+?)\.`),
				extract: func(g []string, out *ParsedMessage) {
					setDecimal(&out.Amount, g[1])
					setString(&out.SenderName, g[2])
					setString(&out.TransactionID, g[3])
					setDate(&out.TransactionDate, g[4])
				},
			},
			{
				pattern: regexp.MustCompile(`(?i)(\d+(?:\.\d{2})?)\s*RWF received from (.+?)\. TxId: (\w+)\. (.+)`),
				extract: func(g []string, out *ParsedMessage) {
					setDecimal(&out.Amount, g[1])
					setString(&out.SenderName, g[2])
					setString(&out.TransactionID, g[3])
					setDate(&out.TransactionDate, g[4])
				},
			},
		},
	},
	{
		// Bill payments also read as "payment ... completed"; without the
		// exclusions they would never reach their own gates further down.
		gate: func(lower string) bool {
			return rePaymentCompleted.MatchString(lower) &&
				strings.Contains(lower, "txid") &&
				!strings.Contains(lower, "airtime") &&
				!strings.Contains(lower, "cash power") &&
				!strings.Contains(lower, "eucl")
		},
		resolve: assigns(domain.CategoryPaymentToCodeHolder),
		variants: []variant{
			{
				pattern: regexp.MustCompile(`(?i)TxId: (\w+)\. Your payment of (\d+(?:\.\d{2})?)\s*RWF to (.+?) has been completed\. Date: (.+?)\.`),
				extract: func(g []string, out *ParsedMessage) {
					setString(&out.TransactionID, g[1])
					setDecimal(&out.Amount, g[2])
					setString(&out.ReceiverName, g[3])
					setDate(&out.TransactionDate, g[4])
				},
			},
			{
				pattern: regexp.MustCompile(`(?i)Payment of (\d+(?:\.\d{2})?)\s*RWF to (.+?) completed\. TxId: (\w+)\. (.+)`),
				extract: func(g []string, out *ParsedMessage) {
					setDecimal(&out.Amount, g[1])
					setString(&out.ReceiverName, g[2])
					setString(&out.TransactionID, g[3])
					setDate(&out.TransactionDate, g[4])
				},
			},
		},
	},
	{
		gate: func(lower string) bool {
			return strings.Contains(lower, "airtime") && strings.Contains(lower, "payment")
		},
		resolve: func(_ string, out *ParsedMessage) {
			out.Category = domain.CategoryAirtimeBillPayment
			setString(&out.ServiceProvider, "MTN")
		},
		variants: []variant{
			{
				pattern: regexp.MustCompile(`(?i)\*162\*TxId:(\w+)\*S\*Your payment of (\d+(?:\.\d{2})?)\s*RWF to Airtime has been completed\. Fee: (\d+(?:\.\d{2})?)\s*RWF\. Date: (.+?)\.`),
				extract: func(g []string, out *ParsedMessage) {
					setString(&out.TransactionID, g[1])
					setDecimal(&out.Amount, g[2])
					setDecimal(&out.Fee, g[3])
					setDate(&out.TransactionDate, g[4])
				},
			},
			{
				pattern: regexp.MustCompile(`(?i)Airtime payment of (\d+(?:\.\d{2})?)\s*RWF completed\. Fee: (\d+(?:\.\d{2})?)\s*RWF\. TxId: (\w+)\. (.+)`),
				extract: func(g []string, out *ParsedMessage) {
					setDecimal(&out.Amount, g[1])
					setDecimal(&out.Fee, g[2])
					setString(&out.TransactionID, g[3])
					setDate(&out.TransactionDate, g[4])
				},
			},
		},
	},
	{
		gate: func(lower string) bool {
			return (strings.Contains(lower, "withdrawn") || strings.Contains(lower, "withdraw")) &&
				strings.Contains(lower, "agent")
		},
		resolve: assigns(domain.CategoryAgentWithdrawal),
		variants: []variant{
			{
				pattern: regexp.MustCompile(`(?i)You (.+?) have via agent: (.+?) \((\d+)\), withdrawn (\d+(?:\.\d{2})?)\s*RWF on (.+?)\.`),
				extract: func(g []string, out *ParsedMessage) {
					setString(&out.ReceiverName, g[1])
					setString(&out.AgentName, g[2])
					setString(&out.AgentPhone, g[3])
					setDecimal(&out.Amount, g[4])
					setDate(&out.TransactionDate, g[5])
				},
			},
			{
				pattern: regexp.MustCompile(`(?i)Withdrawn (\d+(?:\.\d{2})?)\s*RWF via agent (.+?) on (.+?)\. TxId: (\w+)`),
				extract: func(g []string, out *ParsedMessage) {
					setDecimal(&out.Amount, g[1])
					setString(&out.AgentName, g[2])
					setDate(&out.TransactionDate, g[3])
					setString(&out.TransactionID, g[4])
				},
			},
		},
	},
	{
		gate: func(lower string) bool {
			return reBundlePurchased.MatchString(lower) || strings.Contains(lower, "yello!")
		},
		resolve: func(lower string, out *ParsedMessage) {
			if strings.Contains(lower, "internet") {
				out.Category = domain.CategoryInternetBundlePurchase
			} else {
				out.Category = domain.CategoryVoiceBundlePurchase
			}
			setString(&out.ServiceProvider, "MTN")
		},
		variants: []variant{
			{
				pattern: regexp.MustCompile(`(?i)Yello! You have purchased an internet bundle of (.+?) for (\d+(?:\.\d{2})?)\s*RWF valid for (\d+) days`),
				extract: func(g []string, out *ParsedMessage) {
					setString(&out.BundleSize, g[1])
					setDecimal(&out.Amount, g[2])
					setInt(&out.ValidityDays, g[3])
					setString(&out.BundleType, "Internet")
				},
			},
			{
				pattern: regexp.MustCompile(`(?i)Internet bundle (.+?) purchased for (\d+(?:\.\d{2})?)\s*RWF\. Valid for (\d+) days`),
				extract: func(g []string, out *ParsedMessage) {
					setString(&out.BundleSize, g[1])
					setDecimal(&out.Amount, g[2])
					setInt(&out.ValidityDays, g[3])
					setString(&out.BundleType, "Internet")
				},
			},
			{
				pattern: regexp.MustCompile(`(?i)Voice bundle (.+?) purchased for (\d+(?:\.\d{2})?)\s*RWF\. Valid for (\d+) days`),
				extract: func(g []string, out *ParsedMessage) {
					setString(&out.BundleSize, g[1])
					setDecimal(&out.Amount, g[2])
					setInt(&out.ValidityDays, g[3])
					setString(&out.BundleType, "Voice")
				},
			},
		},
	},
	{
		gate: func(lower string) bool {
			return reTransferOrSent.MatchString(lower) && reLongDigitRun.MatchString(lower)
		},
		resolve: assigns(domain.CategoryTransferToMobile),
		variants: []variant{
			{
				pattern: regexp.MustCompile(`(?i)Transfer of (\d+(?:\.\d{2})?)\s*RWF to (\d+) completed\. TxId: (\w+)\. (.+)`),
				extract: func(g []string, out *ParsedMessage) {
					setDecimal(&out.Amount, g[1])
					setString(&out.PhoneNumber, g[2])
					setString(&out.TransactionID, g[3])
					setDate(&out.TransactionDate, g[4])
				},
			},
			{
				pattern: regexp.MustCompile(`(?i)Sent (\d+(?:\.\d{2})?)\s*RWF to (\d+)\. TxId: (\w+)\. Date: (.+)`),
				extract: func(g []string, out *ParsedMessage) {
					setDecimal(&out.Amount, g[1])
					setString(&out.PhoneNumber, g[2])
					setString(&out.TransactionID, g[3])
					setDate(&out.TransactionDate, g[4])
				},
			},
		},
	},
	{
		gate:    func(lower string) bool { return reBankDeposit.MatchString(lower) },
		resolve: assigns(domain.CategoryBankDeposit),
		variants: []variant{
			{
				pattern: regexp.MustCompile(`(?i)Bank deposit of (\d+(?:\.\d{2})?)\s*RWF completed\. TxId: (\w+)\. (.+)`),
				extract: extractAmountIDDate,
			},
			{
				pattern: regexp.MustCompile(`(?i)Deposited (\d+(?:\.\d{2})?)\s*RWF to bank\. TxId: (\w+)\. (.+)`),
				extract: extractAmountIDDate,
			},
		},
	},
	{
		gate: func(lower string) bool {
			return strings.Contains(lower, "cash power") || strings.Contains(lower, "eucl")
		},
		resolve: func(lower string, out *ParsedMessage) {
			out.Category = domain.CategoryCashPowerBillPayment
			if strings.Contains(lower, "eucl") {
				setString(&out.ServiceProvider, "EUCL")
			} else {
				setString(&out.ServiceProvider, "Cash Power")
			}
		},
		variants: []variant{
			{
				pattern: regexp.MustCompile(`(?i)Cash Power payment of (\d+(?:\.\d{2})?)\s*RWF completed\. TxId: (\w+)\. (.+)`),
				extract: extractAmountIDDate,
			},
			{
				pattern: regexp.MustCompile(`(?i)EUCL payment of (\d+(?:\.\d{2})?)\s*RWF completed\. TxId: (\w+)\. (.+)`),
				extract: extractAmountIDDate,
			},
		},
	},
	{
		gate: func(lower string) bool {
			return strings.Contains(lower, "third party") || strings.Contains(lower, "initiated by")
		},
		resolve: assigns(domain.CategoryThirdPartyTransaction),
		variants: []variant{
			{
				pattern: regexp.MustCompile(`(?i)Third party transaction of (\d+(?:\.\d{2})?)\s*RWF\. TxId: (\w+)\. (.+)`),
				extract: extractAmountIDDate,
			},
			{
				pattern: regexp.MustCompile(`(?i)Payment initiated by (.+?)\. Amount: (\d+(?:\.\d{2})?)\s*RWF\. TxId: (\w+)`),
				extract: func(g []string, out *ParsedMessage) {
					setString(&out.SenderName, g[1])
					setDecimal(&out.Amount, g[2])
					setString(&out.TransactionID, g[3])
				},
			},
		},
	},
	{
		gate: func(lower string) bool {
			return strings.Contains(lower, "bank transfer") || reTransferredBank.MatchString(lower)
		},
		resolve: assigns(domain.CategoryBankTransfer),
		variants: []variant{
			{
				pattern: regexp.MustCompile(`(?i)Bank transfer of (\d+(?:\.\d{2})?)\s*RWF completed\. TxId: (\w+)\. (.+)`),
				extract: extractAmountIDDate,
			},
			{
				pattern: regexp.MustCompile(`(?i)Transferred (\d+(?:\.\d{2})?)\s*RWF to bank\. TxId: (\w+)\. (.+)`),
				extract: extractAmountIDDate,
			},
		},
	},
}

// extractAmountIDDate covers the common "<amount> RWF ... TxId: <id>. <date>"
// group layout shared by several categories.
func extractAmountIDDate(g []string, out *ParsedMessage) {
	setDecimal(&out.Amount, g[1])
	setString(&out.TransactionID, g[2])
	setDate(&out.TransactionDate, g[3])
}
