// Package cursor contains the default [domain.Cursor] implementation.
package cursor

import (
	"context"

	"github.com/vinicius-lino-figueiredo/upim/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// Cursor implements [domain.Cursor] over rows already in memory. Rows are
// dropped from the cursor as it advances.
type Cursor struct {
	ctx     context.Context
	cancel  context.CancelCauseFunc
	dec     domain.Decoder
	pending []domain.Row
	current *domain.Row
}

// NewCursor returns a new implementation of [domain.Cursor]. It implements
// [domain.CursorFactory].
func NewCursor(ctx context.Context, rows []domain.Row, options ...domain.CursorOption) (domain.Cursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := domain.CursorOptions{Decoder: decoder.NewDecoder()}
	for _, option := range options {
		option(&opts)
	}

	cur := &Cursor{dec: opts.Decoder, pending: rows}
	cur.ctx, cur.cancel = context.WithCancelCause(ctx)
	return cur, nil
}

// Next implements [domain.Cursor].
func (c *Cursor) Next() bool {
	if c.ctx.Err() != nil || len(c.pending) == 0 {
		return false
	}
	c.current = &c.pending[0]
	c.pending = c.pending[1:]
	return true
}

// Scan implements [domain.Cursor]. Scanning a closed cursor returns
// [domain.ErrCursorClosed].
func (c *Cursor) Scan(ctx context.Context, target any) error {
	if c.ctx.Err() != nil {
		return context.Cause(c.ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.current == nil {
		return domain.ErrScanBeforeNext
	}
	return c.dec.Decode(*c.current, target)
}

// Err implements [domain.Cursor]. It returns [domain.ErrCursorClosed] once
// the cursor is closed, or the cause of the cancellation of the context the
// cursor was created with.
func (c *Cursor) Err() error {
	return context.Cause(c.ctx)
}

// Close implements [domain.Cursor].
func (c *Cursor) Close() error {
	if c.ctx.Err() != nil {
		return context.Cause(c.ctx)
	}
	c.cancel(domain.ErrCursorClosed)
	c.pending, c.current = nil, nil
	return nil
}
