package ast

// Type descriptors publish the declared shape of every exported record type
// so external tooling (IDE completion, static analysis, code generators) can
// consume them without reflecting over this package. The table is treated as
// a generated artifact derived from the same variant list the converter is
// built against; descriptor_test.go verifies it against the real struct
// shapes so that grammar changes cannot drift past it unnoticed.

// FieldDescriptor describes a single exported field of a record type.
// Type is the Go type as formatted by the reflect package.
type FieldDescriptor struct {
	Name string
	Type string
}

// TypeDescriptor describes the declared external shape of one record type.
type TypeDescriptor struct {
	Name       string
	Underlying string // "struct" or "string"
	Directive  bool   // true if the type implements Directive
	Kind       Kind   // classification tag, valid only when Directive
	Fields     []FieldDescriptor
}

// New returns a zero value of the concrete directive type classified by k,
// or nil for an out-of-range kind.
func (k Kind) New() Directive {
	switch k {
	case KindOpen:
		return &Open{}
	case KindClose:
		return &Close{}
	case KindCommodity:
		return &Commodity{}
	case KindPad:
		return &Pad{}
	case KindBalance:
		return &Balance{}
	case KindTransaction:
		return &Transaction{}
	case KindNote:
		return &Note{}
	case KindDocument:
		return &Document{}
	case KindPrice:
		return &Price{}
	case KindEvent:
		return &Event{}
	case KindQuery:
		return &Query{}
	case KindCustom:
		return &Custom{}
	case KindOption:
		return &Option{}
	case KindInclude:
		return &Include{}
	case KindPlugin:
		return &Plugin{}
	case KindPushtag:
		return &Pushtag{}
	case KindPoptag:
		return &Poptag{}
	case KindPushmeta:
		return &Pushmeta{}
	case KindPopmeta:
		return &Popmeta{}
	case KindComment:
		return &Comment{}
	default:
		return nil
	}
}

// span and metadata field descriptors shared by the metadata-capable variants.
var nodeFields = []FieldDescriptor{
	{"Span", "ast.Span"},
	{"Metadata", "[]*ast.Metadata"},
}

// bareFields is the base shape for variants that cannot carry metadata.
var bareFields = []FieldDescriptor{
	{"Span", "ast.Span"},
}

func directiveDescriptor(name string, k Kind, base []FieldDescriptor, fields ...FieldDescriptor) TypeDescriptor {
	return TypeDescriptor{
		Name:       name,
		Underlying: "struct",
		Directive:  true,
		Kind:       k,
		Fields:     append(append([]FieldDescriptor{}, base...), fields...),
	}
}

// directiveDescriptors is indexed by Kind. The array length is checked
// against the kind count at compile time: adding a kind without describing
// its shape here does not build.
var directiveDescriptors = [numKinds]TypeDescriptor{
	KindOpen: directiveDescriptor("Open", KindOpen, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Account", "ast.Account"},
		FieldDescriptor{"ConstraintCurrencies", "[]string"},
		FieldDescriptor{"BookingMethod", "string"},
	),
	KindClose: directiveDescriptor("Close", KindClose, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Account", "ast.Account"},
	),
	KindCommodity: directiveDescriptor("Commodity", KindCommodity, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Currency", "string"},
	),
	KindPad: directiveDescriptor("Pad", KindPad, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Account", "ast.Account"},
		FieldDescriptor{"AccountPad", "ast.Account"},
	),
	KindBalance: directiveDescriptor("Balance", KindBalance, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Account", "ast.Account"},
		FieldDescriptor{"Amount", "*ast.Amount"},
		FieldDescriptor{"Tolerance", "string"},
	),
	KindTransaction: directiveDescriptor("Transaction", KindTransaction, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Flag", "string"},
		FieldDescriptor{"Payee", "string"},
		FieldDescriptor{"Narration", "string"},
		FieldDescriptor{"Tags", "[]ast.Tag"},
		FieldDescriptor{"Links", "[]ast.Link"},
		FieldDescriptor{"Postings", "[]*ast.Posting"},
	),
	KindNote: directiveDescriptor("Note", KindNote, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Account", "ast.Account"},
		FieldDescriptor{"Description", "string"},
	),
	KindDocument: directiveDescriptor("Document", KindDocument, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Account", "ast.Account"},
		FieldDescriptor{"Path", "string"},
		FieldDescriptor{"Tags", "[]ast.Tag"},
		FieldDescriptor{"Links", "[]ast.Link"},
	),
	KindPrice: directiveDescriptor("Price", KindPrice, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Commodity", "string"},
		FieldDescriptor{"Amount", "*ast.Amount"},
	),
	KindEvent: directiveDescriptor("Event", KindEvent, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Name", "string"},
		FieldDescriptor{"Value", "string"},
	),
	KindQuery: directiveDescriptor("Query", KindQuery, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Name", "string"},
		FieldDescriptor{"Contents", "string"},
	),
	KindCustom: directiveDescriptor("Custom", KindCustom, nodeFields,
		FieldDescriptor{"Date", "*ast.Date"},
		FieldDescriptor{"Type", "string"},
		FieldDescriptor{"Values", "[]*ast.CustomValue"},
	),
	KindOption: directiveDescriptor("Option", KindOption, bareFields,
		FieldDescriptor{"Name", "string"},
		FieldDescriptor{"Value", "string"},
	),
	KindInclude: directiveDescriptor("Include", KindInclude, bareFields,
		FieldDescriptor{"Filename", "string"},
	),
	KindPlugin: directiveDescriptor("Plugin", KindPlugin, bareFields,
		FieldDescriptor{"Name", "string"},
		FieldDescriptor{"Config", "string"},
	),
	KindPushtag: directiveDescriptor("Pushtag", KindPushtag, bareFields,
		FieldDescriptor{"Tag", "ast.Tag"},
	),
	KindPoptag: directiveDescriptor("Poptag", KindPoptag, bareFields,
		FieldDescriptor{"Tag", "ast.Tag"},
	),
	KindPushmeta: directiveDescriptor("Pushmeta", KindPushmeta, bareFields,
		FieldDescriptor{"Key", "string"},
		FieldDescriptor{"Value", "*ast.MetadataValue"},
	),
	KindPopmeta: directiveDescriptor("Popmeta", KindPopmeta, bareFields,
		FieldDescriptor{"Key", "string"},
	),
	KindComment: directiveDescriptor("Comment", KindComment, bareFields,
		FieldDescriptor{"Content", "string"},
	),
}

// valueDescriptors covers the non-directive record types that are part of the
// external contract.
var valueDescriptors = []TypeDescriptor{
	{Name: "Position", Underlying: "struct", Fields: []FieldDescriptor{
		{"Filename", "string"},
		{"Offset", "int"},
		{"Line", "int"},
		{"Column", "int"},
	}},
	{Name: "Span", Underlying: "struct", Fields: []FieldDescriptor{
		{"Start", "ast.Position"},
		{"End", "ast.Position"},
	}},
	{Name: "Token", Underlying: "struct", Fields: []FieldDescriptor{
		{"Kind", "string"},
		{"Span", "ast.Span"},
		{"Text", "string"},
	}},
	{Name: "Date", Underlying: "struct", Fields: []FieldDescriptor{
		{"Time", "time.Time"},
	}},
	{Name: "Account", Underlying: "string"},
	{Name: "Tag", Underlying: "string"},
	{Name: "Link", Underlying: "string"},
	{Name: "Amount", Underlying: "struct", Fields: []FieldDescriptor{
		{"Value", "string"},
		{"Currency", "string"},
		{"Expression", "string"},
		{"Raw", "ast.Token"},
	}},
	{Name: "Cost", Underlying: "struct", Fields: []FieldDescriptor{
		{"Span", "ast.Span"},
		{"IsTotal", "bool"},
		{"IsMerge", "bool"},
		{"Amount", "*ast.Amount"},
		{"Date", "*ast.Date"},
		{"Label", "string"},
	}},
	{Name: "Posting", Underlying: "struct", Fields: []FieldDescriptor{
		{"Span", "ast.Span"},
		{"Flag", "string"},
		{"Account", "ast.Account"},
		{"Amount", "*ast.Amount"},
		{"Cost", "*ast.Cost"},
		{"PriceTotal", "bool"},
		{"Price", "*ast.Amount"},
		{"Metadata", "[]*ast.Metadata"},
	}},
	{Name: "Metadata", Underlying: "struct", Fields: []FieldDescriptor{
		{"Span", "ast.Span"},
		{"Key", "string"},
		{"Value", "*ast.MetadataValue"},
	}},
	{Name: "MetadataValue", Underlying: "struct", Fields: []FieldDescriptor{
		{"StringValue", "*string"},
		{"Date", "*ast.Date"},
		{"Account", "*ast.Account"},
		{"Currency", "*string"},
		{"Tag", "*ast.Tag"},
		{"Link", "*ast.Link"},
		{"Number", "*string"},
		{"Amount", "*ast.Amount"},
		{"Boolean", "*bool"},
	}},
	{Name: "CustomValue", Underlying: "struct", Fields: []FieldDescriptor{
		{"Span", "ast.Span"},
		{"String", "*string"},
		{"Date", "*ast.Date"},
		{"Boolean", "*bool"},
		{"Amount", "*ast.Amount"},
		{"Number", "*string"},
		{"Account", "*ast.Account"},
	}},
}

// Descriptors returns the full set of published type descriptors: one per
// directive kind, in kind order, followed by the value record types.
func Descriptors() []TypeDescriptor {
	out := make([]TypeDescriptor, 0, len(directiveDescriptors)+len(valueDescriptors))
	out = append(out, directiveDescriptors[:]...)
	out = append(out, valueDescriptors...)
	return out
}

// DescriptorFor returns the descriptor of the concrete type classified by k.
func DescriptorFor(k Kind) (TypeDescriptor, bool) {
	if int(k) >= KindCount {
		return TypeDescriptor{}, false
	}
	return directiveDescriptors[k], true
}
