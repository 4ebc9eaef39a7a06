package ast

// Transaction records a financial transaction with a date, flag, optional
// payee, narration, and a list of postings. The flag indicates transaction
// status: '*' for cleared transactions, '!' for pending ones, or "txn" in the
// source which normalizes to '*'. Tags and links categorize and connect
// related transactions.
//
// Example:
//
//	2014-05-05 * "Cafe Mogador" "Lamb tagine with wine"
//	  Liabilities:CreditCard:CapitalOne         -37.45 USD
//	  Expenses:Food:Restaurant
//
//	2014-06-08 ! "Transfer to Savings" #savings-goal
//	  Assets:US:BofA:Checking                  -100.00 USD
//	  Assets:US:BofA:Savings                    100.00 USD
type Transaction struct {
	node
	Date      *Date
	Flag      string
	Payee     string
	Narration string
	Tags      []Tag
	Links     []Link

	Postings []*Posting
}

var _ Directive = &Transaction{}

func (t *Transaction) Kind() Kind { return KindTransaction }

// Accounts returns the distinct accounts referenced by the transaction's
// postings, in first-appearance order.
func (t *Transaction) Accounts() []Account {
	seen := make(map[Account]bool, len(t.Postings))
	accounts := make([]Account, 0, len(t.Postings))
	for _, p := range t.Postings {
		if !seen[p.Account] {
			accounts = append(accounts, p.Account)
			seen[p.Account] = true
		}
	}
	return accounts
}

// Posting represents a single leg of a transaction, specifying an account and
// optional amount, cost, and price. One posting may omit its amount, which
// downstream tooling infers. Cost specifications track the acquisition cost
// of commodities; price specifications record the conversion rate. PriceTotal
// distinguishes @@ (total price) from @ (per-unit price).
//
// Example postings within transactions:
//
//	Assets:Investments:Brokerage    10 HOOL {518.73 USD}  ; Purchase with cost
//	Assets:Investments:Cash        200 EUR @ 1.35 USD     ; Currency conversion with price
//	Expenses:Groceries              45.60 USD              ; Simple posting
//	Assets:Checking                                        ; Inferred amount
type Posting struct {
	Span       Span
	Flag       string
	Account    Account
	Amount     *Amount
	Cost       *Cost
	PriceTotal bool
	Price      *Amount

	Metadata []*Metadata
}
