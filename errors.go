package sfmodel

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeUnknownProperty   = "unknown_property"
	CodeRequired          = "required"
	CodeInvalidType       = "invalid_type"
	CodeDuplicateProperty = "duplicate_property"
	CodeDuplicateModel    = "duplicate_model"
	CodeUnknownModel      = "unknown_model"
	CodeDuplicateKey      = "duplicate_key"
	CodeParseError        = "parse_error"
	CodeTruncated         = "truncated"
)

// Sentinel causes, reachable from Issues with errors.Is.
var (
	ErrUnknownProperty = errors.New("sfmodel: unknown property")
	ErrMissingProperty = errors.New("sfmodel: missing required property")
	ErrInvalidType     = errors.New("sfmodel: invalid type")
	ErrInvalidModel    = errors.New("sfmodel: invalid model definition")
)

// Issue represents a single construction, extraction or decoding failure.
type Issue struct {
	Path    string // JSON Pointer of the offending wire key, "/" for the root.
	Code    string
	Message string
	// Params carries structured parameters such as {"type": "Widget", "key": "id"}.
	Params map[string]any
	Cause  error
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error renders the first few issue messages.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Message != "" {
			b.WriteString(it.Message)
		} else {
			fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		}
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the issue causes so errors.Is can match the sentinels.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// HasCode reports whether any issue carries code.
func (iss Issues) HasCode(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// rebase prefixes child issue paths with base.
func rebase(base string, child Issues) Issues {
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with CodeParseError.
func issuesFromErr(path string, err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{Issue{Path: path, Code: CodeParseError, Message: err.Error(), Cause: err}}
}
