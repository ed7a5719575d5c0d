package logline

import "strings"

// Kind tells what a log line carries.
type Kind int

const (
	KindOther Kind = iota
	KindPrice
	KindOrder
)

func (k Kind) String() string {
	switch k {
	case KindPrice:
		return "price"
	case KindOrder:
		return "order"
	default:
		return "other"
	}
}

// metaFields is the number of leading positional fields (timestamp plus
// three engine fields) that precede the type tag.
const metaFields = 4

var kindTags = map[string]Kind{
	"price": KindPrice,
	"order": KindOrder,
}

// Classify reports whether line is a price event, an order event, or
// anything else. It never fails: free text and malformed lines are
// KindOther.
func Classify(line string) Kind {
	fields := strings.Split(line, " ")
	if len(fields) <= metaFields {
		return KindOther
	}
	tag, ok := typeTag(fields[metaFields])
	if !ok {
		return KindOther
	}
	if k, ok := kindTags[tag]; ok {
		return k
	}
	return KindOther
}

// typeTag extracts <tag> from a "type:<tag>" field.
func typeTag(field string) (string, bool) {
	if !strings.HasPrefix(field, "type") {
		return "", false
	}
	_, tag, ok := strings.Cut(field, ":")
	return tag, ok
}
