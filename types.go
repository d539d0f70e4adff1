package sfmodel

// Kind names the variant of a MemberType.
type Kind int

const (
	KindAny Kind = iota
	KindInteger
	KindFloat
	KindString
	KindBoolean
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "any"
	}
}

// Severity expresses how a decoding anomaly is reported.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DecodeOpt bundles decoding options.
type DecodeOpt struct {
	// Strict fails extraction when a required, non-array property is missing.
	Strict bool
	// OnDuplicateKey controls duplicate JSON object keys. Warn logs them and
	// keeps the last value.
	OnDuplicateKey Severity
	// MaxDepth limits object/array nesting; 0 disables the check.
	MaxDepth int
	// MaxBytes limits the input size; 0 disables the check.
	MaxBytes int64
}

// DefaultDecodeOpt returns strict extraction with duplicate keys rejected.
func DefaultDecodeOpt() DecodeOpt {
	return DecodeOpt{Strict: true, OnDuplicateKey: Error}
}
