package ast

// Option sets a configuration parameter that affects how the ledger is
// processed or displayed, e.g. the ledger title or operating currency.
// Options apply globally to the entire ledger.
//
// Example:
//
//	option "title" "Personal Ledger of John Doe"
//	option "operating_currency" "USD"
type Option struct {
	bareNode
	Name  string
	Value string
}

var _ Directive = &Option{}

func (o *Option) Kind() Kind { return KindOption }

// Include imports directives from another Beancount file, allowing a ledger
// to be split across multiple files. The path can be absolute or relative to
// the file containing the include directive.
//
// Example:
//
//	include "accounts.beancount"
//	include "transactions/2014-expenses.beancount"
type Include struct {
	bareNode
	Filename string
}

var _ Directive = &Include{}

func (i *Include) Kind() Kind { return KindInclude }

// Plugin loads a processing plugin with an optional configuration string.
//
// Example:
//
//	plugin "beancount.plugins.auto_accounts"
//	plugin "beancount.plugins.check_commodity" "USD,EUR,GBP"
type Plugin struct {
	bareNode
	Name   string
	Config string
}

var _ Directive = &Plugin{}

func (p *Plugin) Kind() Kind { return KindPlugin }

// Pushtag pushes a tag onto the tag stack, causing all subsequent
// transactions in the file to receive this tag until a corresponding poptag.
// The stack semantics themselves are a processing concern; the directive only
// records the declaration.
//
// Example:
//
//	pushtag #trip-europe
type Pushtag struct {
	bareNode
	Tag Tag
}

var _ Directive = &Pushtag{}

func (p *Pushtag) Kind() Kind { return KindPushtag }

// Poptag removes a tag from the tag stack.
//
// Example:
//
//	poptag #trip-europe
type Poptag struct {
	bareNode
	Tag Tag
}

var _ Directive = &Poptag{}

func (p *Poptag) Kind() Kind { return KindPoptag }

// Pushmeta pushes a metadata key-value pair onto the metadata stack, causing
// all subsequent directives in the file to receive this entry until a
// corresponding popmeta.
//
// Example:
//
//	pushmeta location: "New York, NY"
type Pushmeta struct {
	bareNode
	Key   string
	Value *MetadataValue
}

var _ Directive = &Pushmeta{}

func (p *Pushmeta) Kind() Kind { return KindPushmeta }

// Popmeta removes a metadata key from the metadata stack.
//
// Example:
//
//	popmeta location:
type Popmeta struct {
	bareNode
	Key string
}

var _ Directive = &Popmeta{}

func (p *Popmeta) Kind() Kind { return KindPopmeta }

// Comment is a standalone comment line (starting with ;). Comments attached
// to the end of directive lines are not preserved; full-line comments are,
// so that tooling can report on source structure.
type Comment struct {
	bareNode
	Content string // Comment text including the semicolon prefix
}

var _ Directive = &Comment{}

func (c *Comment) Kind() Kind { return KindComment }
