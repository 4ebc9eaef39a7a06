package ast

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amount represents a numerical value with its associated currency or commodity
// symbol. The value is stored as a string to preserve the exact decimal
// representation from the input, avoiding floating-point precision issues.
// Raw keeps the number token for diagnostics.
//
// An amount may be written as an arithmetic expression, e.g. (2 + 3) * 4.00.
// Expression then holds the verbatim source text while Value holds the result,
// computed with exact decimal arithmetic. For plain literals Expression is
// empty and Value is the literal digit sequence itself.
type Amount struct {
	Value      string
	Currency   string
	Expression string
	Raw        Token
}

// NewAmount validates that value is an exact decimal literal and returns the
// amount. The literal digit sequence is kept verbatim; no binary
// floating-point intermediate is ever involved.
func NewAmount(value, currency string) (*Amount, error) {
	if _, err := decimal.NewFromString(value); err != nil {
		return nil, fmt.Errorf("invalid number literal %q: %w", value, err)
	}
	return &Amount{Value: value, Currency: currency}, nil
}

// Decimal interprets the literal value as an exact decimal.
func (a *Amount) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(a.Value)
}

// String returns the amount as it would appear in source, e.g. "100.10 USD".
func (a *Amount) String() string {
	if a == nil {
		return ""
	}
	if a.Currency == "" {
		return a.Value
	}
	return a.Value + " " + a.Currency
}

// Cost represents the cost basis specification attached to a posting. An empty
// cost {} selects any lot automatically. A merge cost {*} averages all lots
// together. Otherwise it can specify the per-unit cost amount, acquisition
// date, and/or a label identifying specific lots.
//
// Example cost specifications:
//
//	10 HOOL {518.73 USD}              ; Per-unit cost
//	10 HOOL {518.73 USD, 2014-05-01}  ; Cost with acquisition date
//	-5 HOOL {502.12 USD, "first-lot"} ; Cost with label for lot selection
//	10 HOOL {{5187.30 USD}}           ; Total cost for the whole lot
//	10 HOOL {}                        ; Any lot (automatic selection)
//	10 HOOL {*}                       ; Merge/average all lots
//
// IsTotal marks the double-brace form, where the amount covers the whole
// position rather than one unit. IsMerge marks the {*} form.
type Cost struct {
	Span    Span
	IsTotal bool
	IsMerge bool
	Amount  *Amount
	Date    *Date
	Label   string
}

// IsEmpty returns true if this is an empty cost specification {}.
// Distinguishes between nil (no cost) and empty cost (any lot selection).
func (c *Cost) IsEmpty() bool {
	return c != nil && !c.IsTotal && !c.IsMerge &&
		c.Amount == nil && c.Date == nil && c.Label == ""
}

// Account represents a Beancount account name consisting of at least two
// colon-separated segments. The first segment (account type) must be one of
// the five account categories: Assets, Liabilities, Equity, Income, or
// Expenses. Subsequent segments must start with an uppercase letter or digit
// and can contain letters, numbers, and hyphens.
//
// Example accounts:
//
//	Assets:US:BofA:Checking
//	Liabilities:CreditCard:CapitalOne
//	Income:US:Acme:Salary
//	Expenses:Home:Rent
type Account string

// NewAccount validates name against the account grammar and returns it as an
// Account. Validation failures never panic; a malformed name that reached the
// converter is reported as a syntax error by the caller.
func NewAccount(name string) (Account, error) {
	parts := strings.Split(name, ":")
	if len(parts) < 2 {
		return "", fmt.Errorf("account must have at least two segments: %s", name)
	}

	switch parts[0] {
	case "Assets", "Liabilities", "Equity", "Income", "Expenses":
	default:
		return "", fmt.Errorf("unexpected account type %q", parts[0])
	}

	for i := 1; i < len(parts); i++ {
		if !isValidAccountSegment(parts[i]) {
			return "", fmt.Errorf("invalid account segment at position %d: %s", i, parts[i])
		}
	}

	return Account(name), nil
}

func (a Account) String() string { return string(a) }

// Segments returns the colon-separated parts of the account name.
func (a Account) Segments() []string {
	return strings.Split(string(a), ":")
}

// Root returns the account type, the first segment of the name.
func (a Account) Root() string {
	name := string(a)
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i]
	}
	return name
}

// accountSegmentRegex validates account segments (after first).
// Must start with uppercase letter or digit, can contain alphanumerics and hyphens.
var accountSegmentRegex = regexp.MustCompile(`^[A-Z0-9][A-Za-z0-9-]*$`)

func isValidAccountSegment(segment string) bool {
	return len(segment) > 0 && accountSegmentRegex.MatchString(segment)
}

// Date represents a calendar date in ISO 8601 format (YYYY-MM-DD). All dated
// directives carry one. Dates are validated as real calendar dates; 2023-13-01
// and 2023-02-30 are rejected.
type Date struct {
	time.Time
}

// NewDate parses an ISO 8601 date literal into a Date.
func NewDate(s string) (*Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %s", s)
	}
	return &Date{Time: t}, nil
}

// String formats the date back to its ISO 8601 form.
func (d *Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// IsZero returns true if the Date is nil or represents the zero time.
// Nil-safe so that repr and assertion libraries can probe zero values.
func (d *Date) IsZero() bool {
	return d == nil || d.Time.IsZero()
}

// Link represents a reference link starting with ^, used to connect related
// transactions together. The ^ prefix is stripped.
//
// Example: 2014-05-05 * "Payment" ^trip-to-europe
type Link string

// Tag represents a hashtag starting with #, used to categorize and filter
// transactions. The # prefix is stripped.
//
// Example: 2014-05-05 * "Dinner" #dining #entertainment
type Tag string

// MetadataValue represents a typed value that can be stored in metadata.
// This is a discriminated union where exactly one of the pointer fields is
// non-nil to indicate the value type.
//
// Example metadata with different value types:
//
//	invoice: "INV-2024-001"           ; String (quoted)
//	trip-start: 2024-01-15            ; Date (ISO format)
//	linked-account: Assets:Checking   ; Account (colon-separated)
//	target-currency: USD              ; Currency (uppercase identifier)
//	category: #vacation               ; Tag (with # prefix)
//	ref: ^invoice123                  ; Link (with ^ prefix)
//	quantity: 42                      ; Number (decimal)
//	budget: 1000.00 USD               ; Amount (number + currency)
//	active: TRUE                      ; Boolean (uppercase TRUE/FALSE)
type MetadataValue struct {
	StringValue *string
	Date        *Date
	Account     *Account
	Currency    *string
	Tag         *Tag
	Link        *Link
	Number      *string // Stored as string to preserve precision
	Amount      *Amount
	Boolean     *bool
}

// Type returns a string representation of the metadata value's type.
func (m *MetadataValue) Type() string {
	if m == nil {
		return "nil"
	}
	switch {
	case m.StringValue != nil:
		return "string"
	case m.Date != nil:
		return "date"
	case m.Account != nil:
		return "account"
	case m.Currency != nil:
		return "currency"
	case m.Tag != nil:
		return "tag"
	case m.Link != nil:
		return "link"
	case m.Number != nil:
		return "number"
	case m.Amount != nil:
		return "amount"
	case m.Boolean != nil:
		return "boolean"
	default:
		return "unknown"
	}
}

// String returns a string representation of the metadata value.
func (m *MetadataValue) String() string {
	if m == nil {
		return ""
	}
	switch {
	case m.StringValue != nil:
		return *m.StringValue
	case m.Date != nil:
		return m.Date.String()
	case m.Account != nil:
		return string(*m.Account)
	case m.Currency != nil:
		return *m.Currency
	case m.Tag != nil:
		return string(*m.Tag)
	case m.Link != nil:
		return string(*m.Link)
	case m.Number != nil:
		return *m.Number
	case m.Amount != nil:
		return m.Amount.String()
	case m.Boolean != nil:
		if *m.Boolean {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// Metadata represents a key-value pair attached to a directive or posting.
// Metadata entries are indented on lines immediately following the directive
// or posting they annotate. Insertion order is meaningful and preserved.
//
// Example:
//
//	2014-05-05 * "Payment"
//	  invoice: "INV-2014-05-001"
//	  Assets:Checking  -100.00 USD
//	    confirmation: "CONF123456"
//	  Expenses:Services
type Metadata struct {
	Span  Span
	Key   string
	Value *MetadataValue
}
