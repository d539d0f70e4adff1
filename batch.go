package sfmodel

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// maxExtractWorkers bounds ExtractAll concurrency.
const maxExtractWorkers = 8

// ExtractAll extracts every element of a decoded result list, such as the
// volumes of a list call. Issues are collected from all elements and rebased
// under the element index. ctx cancellation stops scheduling further elements.
func (m *Model) ExtractAll(ctx context.Context, raws []map[string]any, strict bool) ([]*Object, error) {
	out := make([]*Object, len(raws))
	errs := make([]error, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxExtractWorkers)
	for i, raw := range raws {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i], errs[i] = m.Extract(raw, strict)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var iss Issues
	for i, err := range errs {
		if err != nil {
			iss = AppendIssues(iss, rebase("/"+strconv.Itoa(i), issuesFromErr("/", err))...)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
