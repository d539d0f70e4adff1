package sfmodel

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/solidfire/sfmodel/i18n"
	eng "github.com/solidfire/sfmodel/internal/engine"
	"github.com/solidfire/sfmodel/source/gojson"
)

// Decode parses JSON bytes and extracts an instance. Without options it uses
// DefaultDecodeOpt; when several are passed the last one wins.
func (m *Model) Decode(ctx context.Context, data []byte, opts ...DecodeOpt) (*Object, error) {
	return m.DecodeReader(ctx, bytes.NewReader(data), opts...)
}

// DecodeReader is like Decode but reads from r.
func (m *Model) DecodeReader(ctx context.Context, r io.Reader, opts ...DecodeOpt) (*Object, error) {
	opt := DefaultDecodeOpt()
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return nil, issuesFromErr("/", err)
		}
		if int64(len(data)) > opt.MaxBytes {
			return nil, Issues{Issue{Path: "/", Code: CodeTruncated, Message: i18n.T(CodeTruncated, nil), Params: map[string]any{"max": opt.MaxBytes}}}
		}
		r = bytes.NewReader(data)
	}
	v, err := decodeAny(ctx, r, opt)
	if err != nil {
		return nil, err
	}
	return m.extractValue(v, opt.Strict)
}

// extractValue accepts null or an object at the top level.
func (m *Model) extractValue(v any, strict bool) (*Object, error) {
	if isNull(v) {
		return m.Extract(nil, strict)
	}
	raw, ok := asMapping(v)
	if !ok {
		return nil, invalidType("object", v)
	}
	return m.Extract(raw, strict)
}

func decodeAny(ctx context.Context, r io.Reader, opt DecodeOpt) (any, error) {
	src := eng.WithContext(ctx, gojson.NewReader(r))
	src = eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		IssueSink: func(si eng.SimpleIssue) {
			log().Warn().Str("path", si.Path).Str("code", si.Code).Msg(si.Message)
		},
	})
	v, err := eng.DecodeDocument(src)
	if err != nil {
		return nil, toIssues(err)
	}
	return v, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message}}
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return Issues{Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil) + ": " + err.Error(), Cause: err}}
}
