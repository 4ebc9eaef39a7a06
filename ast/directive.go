package ast

// Commodity declares a commodity or currency that can be used in the ledger.
// This directive is optional but helps document which currencies and
// commodities are expected in your accounts. It establishes the existence of
// a tradable instrument and can be used with metadata to specify display
// precision and formatting.
//
// Example:
//
//	2014-01-01 commodity USD
//	  name: "US Dollar"
//	  asset-class: "cash"
type Commodity struct {
	node
	Date     *Date
	Currency string
}

var _ Directive = &Commodity{}

func (c *Commodity) Kind() Kind { return KindCommodity }

// Open declares the opening of an account at a specific date, marking the
// beginning of its lifetime in the ledger. You can optionally constrain which
// currencies the account may hold and specify a booking method (STRICT, NONE,
// AVERAGE, FIFO, LIFO) for lot tracking.
//
// Example:
//
//	2014-05-01 open Assets:US:BofA:Checking USD
//	2014-05-01 open Assets:Investments:Brokerage USD,EUR "FIFO"
type Open struct {
	node
	Date                 *Date
	Account              Account
	ConstraintCurrencies []string
	BookingMethod        string
}

var _ Directive = &Open{}

func (o *Open) Kind() Kind { return KindOpen }

// Close declares the closing of an account at a specific date, marking the
// end of its lifetime in the ledger.
//
// Example:
//
//	2015-09-23 close Assets:US:BofA:Checking
type Close struct {
	node
	Date    *Date
	Account Account
}

var _ Directive = &Close{}

func (c *Close) Kind() Kind { return KindClose }

// Balance asserts that an account should have a specific balance at the
// beginning of a given date. The assertion itself is not checked here; the
// directive only records what the source declares, including an optional
// tolerance (e.g. "562.00 ~ 0.05 USD").
//
// Example:
//
//	2014-08-09 balance Assets:US:BofA:Checking 562.00 USD
type Balance struct {
	node
	Date      *Date
	Account   Account
	Amount    *Amount
	Tolerance string
}

var _ Directive = &Balance{}

func (b *Balance) Kind() Kind { return KindBalance }

// Pad inserts a transaction to bring an account to the balance declared by
// the next balance assertion, posted against AccountPad (typically an equity
// account).
//
// Example:
//
//	2014-01-01 pad Assets:US:BofA:Checking Equity:Opening-Balances
type Pad struct {
	node
	Date       *Date
	Account    Account
	AccountPad Account
}

var _ Directive = &Pad{}

func (p *Pad) Kind() Kind { return KindPad }

// Note attaches a dated comment to an account.
//
// Example:
//
//	2014-07-09 note Assets:US:BofA:Checking "Called bank about pending direct deposit"
type Note struct {
	node
	Date        *Date
	Account     Account
	Description string
}

var _ Directive = &Note{}

func (n *Note) Kind() Kind { return KindNote }

// Document associates an external file (such as a receipt, invoice, or
// statement) with an account at a specific date. Tags and links behave as on
// transactions.
//
// Example:
//
//	2014-07-09 document Assets:US:BofA:Checking "/documents/bank-statements/2014-07.pdf"
type Document struct {
	node
	Date    *Date
	Account Account
	Path    string
	Tags    []Tag
	Links   []Link
}

var _ Directive = &Document{}

func (d *Document) Kind() Kind { return KindDocument }

// Price declares the price of a commodity in terms of another currency at a
// specific date.
//
// Example:
//
//	2014-07-09 price USD 1.08 CAD
//	2015-04-30 price HOOL 582.26 USD
type Price struct {
	node
	Date      *Date
	Commodity string
	Amount    *Amount
}

var _ Directive = &Price{}

func (p *Price) Kind() Kind { return KindPrice }

// Event records a named event with a value at a specific date, such as
// location changes or employment history.
//
// Example:
//
//	2014-07-09 event "location" "New York, USA"
type Event struct {
	node
	Date  *Date
	Name  string
	Value string
}

var _ Directive = &Event{}

func (e *Event) Kind() Kind { return KindEvent }

// Query names a stored query whose contents downstream tooling can run
// against the ledger. The contents are preserved verbatim.
//
// Example:
//
//	2014-07-09 query "france-balances" "SELECT account, sum(position) WHERE 'trip-france' in tags"
type Query struct {
	node
	Date     *Date
	Name     string
	Contents string
}

var _ Directive = &Query{}

func (q *Query) Kind() Kind { return KindQuery }

// Custom is a prototype directive for plugin development, allowing arbitrary
// typed values after the directive name. Values can be strings, dates,
// booleans, amounts, numbers, or accounts in any combination.
//
// Example:
//
//	2014-07-09 custom "budget" "..." TRUE 45.30 USD
type Custom struct {
	node
	Date   *Date
	Type   string
	Values []*CustomValue
}

var _ Directive = &Custom{}

func (c *Custom) Kind() Kind { return KindCustom }

// CustomValue represents a single value in a custom directive. Exactly one
// field is non-nil.
type CustomValue struct {
	Span    Span
	String  *string
	Date    *Date
	Boolean *bool
	Amount  *Amount
	Number  *string // Stored as string to preserve precision
	Account *Account
}

// Value returns the actual value stored in this CustomValue.
func (cv *CustomValue) Value() any {
	switch {
	case cv.String != nil:
		return *cv.String
	case cv.Date != nil:
		return cv.Date
	case cv.Boolean != nil:
		return *cv.Boolean
	case cv.Amount != nil:
		return cv.Amount
	case cv.Number != nil:
		return *cv.Number
	case cv.Account != nil:
		return *cv.Account
	default:
		return nil
	}
}
