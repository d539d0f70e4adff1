package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
)

// Kind names the token kinds a TokenSource produces.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token is one lexical JSON token. String holds key and string text, Number
// the literal number text. Offset is -1 when the source does not track it.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource yields tokens until io.EOF.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData reports content after the first top-level value.
var ErrTrailingData = errors.New("engine: unexpected data after top-level value")

// DecodeAny builds one JSON-compatible value from src: objects become
// map[string]any, arrays a non-nil []any and numbers json.Number.
func DecodeAny(src TokenSource) (any, error) {
	r := valueReader{src: src}
	return r.read()
}

// DecodeDocument is DecodeAny for a whole document: after the value src must
// report io.EOF. A trailing token fails with a parse_error IssueError carrying
// the ErrTrailingData message; a tokenizer error on trailing bytes is returned
// as is.
func DecodeDocument(src TokenSource) (any, error) {
	v, err := DecodeAny(src)
	if err != nil {
		return nil, err
	}
	switch _, err := src.NextToken(); {
	case err == nil:
		return nil, IssueError{SimpleIssue{Code: "parse_error", Path: "/", Message: ErrTrailingData.Error()}}
	case !errors.Is(err, io.EOF):
		return nil, err
	}
	return v, nil
}

type valueReader struct{ src TokenSource }

// next reads a token, turning a clean EOF inside a value into
// io.ErrUnexpectedEOF.
func (r *valueReader) next() (Token, error) {
	tok, err := r.src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (r *valueReader) read() (any, error) {
	tok, err := r.src.NextToken()
	if err != nil {
		return nil, err
	}
	return r.value(tok)
}

func (r *valueReader) value(tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		obj := map[string]any{}
		for {
			key, err := r.next()
			if err != nil {
				return nil, err
			}
			if key.Kind == KindEndObject {
				return obj, nil
			}
			if key.Kind != KindKey {
				return nil, fmt.Errorf("engine: expected object key, got token kind %d", key.Kind)
			}
			vt, err := r.next()
			if err != nil {
				return nil, err
			}
			if obj[key.String], err = r.value(vt); err != nil {
				return nil, err
			}
		}
	case KindBeginArray:
		arr := []any{}
		for {
			el, err := r.next()
			if err != nil {
				return nil, err
			}
			if el.Kind == KindEndArray {
				return arr, nil
			}
			v, err := r.value(el)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
	case KindString:
		return tok.String, nil
	case KindNumber:
		return j.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	}
	return nil, fmt.Errorf("engine: unexpected token kind %d", tok.Kind)
}

// WithContext stops the source with ctx.Err() once ctx is done.
func WithContext(ctx context.Context, inner TokenSource) TokenSource {
	if ctx == nil || ctx.Done() == nil {
		return inner
	}
	return &ctxTokenSource{ctx: ctx, inner: inner}
}

type ctxTokenSource struct {
	ctx   context.Context
	inner TokenSource
}

func (c *ctxTokenSource) NextToken() (Token, error) {
	if err := c.ctx.Err(); err != nil {
		return Token{}, err
	}
	return c.inner.NextToken()
}

func (c *ctxTokenSource) Location() int64 { return c.inner.Location() }
