package ast

// Kind is the stable classification tag shared by every directive variant.
// External callers can switch on it without enumerating concrete types.
type Kind uint8

const (
	KindOpen Kind = iota
	KindClose
	KindCommodity
	KindPad
	KindBalance
	KindTransaction
	KindNote
	KindDocument
	KindPrice
	KindEvent
	KindQuery
	KindCustom
	KindOption
	KindInclude
	KindPlugin
	KindPushtag
	KindPoptag
	KindPushmeta
	KindPopmeta
	KindComment

	numKinds
)

// KindCount is the number of directive kinds. The converter and the
// descriptor table are both sized against it so that adding a kind without
// extending them fails at compile time or in tests.
const KindCount = int(numKinds)

var kindNames = [numKinds]string{
	KindOpen:        "open",
	KindClose:       "close",
	KindCommodity:   "commodity",
	KindPad:         "pad",
	KindBalance:     "balance",
	KindTransaction: "transaction",
	KindNote:        "note",
	KindDocument:    "document",
	KindPrice:       "price",
	KindEvent:       "event",
	KindQuery:       "query",
	KindCustom:      "custom",
	KindOption:      "option",
	KindInclude:     "include",
	KindPlugin:      "plugin",
	KindPushtag:     "pushtag",
	KindPoptag:      "poptag",
	KindPushmeta:    "pushmeta",
	KindPopmeta:     "popmeta",
	KindComment:     "comment",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every directive kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}
