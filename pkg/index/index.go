// Package index composes the lower-layer rank/select structures into a
// single Index over one shared bit sequence, following the functional-options
// composite-builder pattern pkg/router.Router uses to assemble an ACL rule
// set, a default outbound and a resolver into one routing façade.
package index

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/xflash-panda/succinct/pkg/bitvector"
	"github.com/xflash-panda/succinct/pkg/rank"
	"github.com/xflash-panda/succinct/pkg/selectidx"
	"github.com/xflash-panda/succinct/pkg/succinct"
)

// Option configures an Index at construction.
type Option func(*options)

type options struct {
	buildSelect9       bool
	buildHintedBsearch bool
}

// WithSelect9 additionally builds a Select9 index over the shared Rank9.
func WithSelect9() Option {
	return func(o *options) { o.buildSelect9 = true }
}

// WithHintedBsearch additionally builds a HintedBsearchSelect over the
// shared Rank9, adding no storage of its own.
func WithHintedBsearch() Option {
	return func(o *options) { o.buildHintedBsearch = true }
}

// Index bundles Rank9, SimpleSelect and SimpleSelectZero over one bit
// sequence, plus any optional select variants requested.
type Index struct {
	rank9       *rank.Rank9
	simpleSel   *selectidx.SimpleSelect
	simpleSelZ  *selectidx.SimpleSelectZero
	select9     *selectidx.Select9
	hintedBsrch *selectidx.HintedBsearchSelect
}

var (
	_ succinct.Rank       = (*Index)(nil)
	_ succinct.Select     = (*Index)(nil)
	_ succinct.SelectZero = (*Index)(nil)
)

// New builds an Index over b. The three mandatory substructures (Rank9,
// SimpleSelect, SimpleSelectZero) are built concurrently with
// golang.org/x/sync/errgroup since each is an independent pass over the
// same immutable input; any optional substructure requested by Option is
// then built from the shared Rank9 once the group joins.
func New(b bitvector.Bits, opts ...Option) (*Index, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	ix := &Index{}
	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		ix.rank9 = rank.NewRank9(b)
		return nil
	})
	g.Go(func() error {
		ix.simpleSel = selectidx.NewSimpleSelect(b)
		return nil
	})
	g.Go(func() error {
		ix.simpleSelZ = selectidx.NewSimpleSelectZero(b)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if o.buildSelect9 {
		ix.select9 = selectidx.NewSelect9(ix.rank9)
	}
	if o.buildHintedBsearch {
		ix.hintedBsrch = selectidx.NewHintedBsearchSelect(ix.rank9)
	}
	return ix, nil
}

func (ix *Index) Rank(p uint64) uint64               { return ix.rank9.Rank(p) }
func (ix *Index) RankZero(p uint64) uint64           { return ix.rank9.RankZero(p) }
func (ix *Index) RankRange(lo, hi uint64) uint64     { return ix.rank9.RankRange(lo, hi) }
func (ix *Index) Count() uint64                      { return ix.rank9.Count() }
func (ix *Index) Len() uint64                        { return ix.rank9.Len() }
func (ix *Index) Select(r uint64) uint64             { return ix.simpleSel.Select(r) }
func (ix *Index) BulkSelect(r uint64, dest []uint64) { ix.simpleSel.BulkSelect(r, dest) }
func (ix *Index) SelectZero(r uint64) uint64         { return ix.simpleSelZ.SelectZero(r) }

// NumBits returns the combined auxiliary bit cost of every substructure
// this Index actually built.
func (ix *Index) NumBits() uint64 {
	n := ix.rank9.NumBits() + ix.simpleSel.NumBits() + ix.simpleSelZ.NumBits()
	if ix.select9 != nil {
		n += ix.select9.NumBits()
	}
	if ix.hintedBsrch != nil {
		n += ix.hintedBsrch.NumBits()
	}
	return n
}

// Select9 returns the optional Select9 substructure and whether it was
// built (the capability-set dynamic-dispatch escape hatch spec.md §9
// calls for: callers that need a *selectidx.Select9 specifically, rather
// than the generic succinct.Select interface, type-assert through here).
func (ix *Index) Select9() (*selectidx.Select9, bool) {
	return ix.select9, ix.select9 != nil
}

// HintedBsearchSelect returns the optional HintedBsearchSelect substructure
// and whether it was built.
func (ix *Index) HintedBsearchSelect() (*selectidx.HintedBsearchSelect, bool) {
	return ix.hintedBsrch, ix.hintedBsrch != nil
}
