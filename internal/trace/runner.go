// Package trace replays operation scripts against a ProbeTable.
//
// A script holds one operation per line:
//
//	insert <int> | remove <int> | contains <int> | indexof <int> | clear
//	size | capacity | empty | dump | copy | restore
//
// Keywords are case-insensitive, and everything after a '#' is a comment. Each operation writes one result line
// "<op> -> <result>" except dump, which writes the table's contents. copy snapshots the table and restore assigns the
// snapshot back.
package trace

import (
	"context"
	"fmt"
	"io"

	"github.com/g-m-twostay/probing/Sets/ProbeTable"
	"github.com/g-m-twostay/probing/internal/config"
	"go.uber.org/zap"
)

// MismatchError is returned by Run when the table disagreed with the reference multiset.
type MismatchError struct {
	Count int
	First string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%d mismatches against the reference, first: %s", e.Count, e.First)
}

type Runner struct {
	cfg    config.TraceConfig
	logger *zap.Logger

	table, saved *ProbeTable.ProbeTable
	ref, refSnap *reference

	mismatches int
	first      string
}

// NewRunner creates a Runner around a fresh table built from cfg.Table. A nil logger discards logs.
func NewRunner(cfg config.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	u := &Runner{
		cfg:    cfg.Trace,
		logger: logger,
		table:  ProbeTable.NewWithCapThreshold(cfg.Table.Capacity, cfg.Table.Threshold),
	}
	if u.cfg.Verify {
		u.ref = newReference()
	}
	return u
}

// Table is the live table.
func (u *Runner) Table() *ProbeTable.ProbeTable {
	return u.table
}

// Run applies every operation of r in order, writing results to w. It stops at the first parse or write error, or
// when ctx is done. Mismatches don't stop the run; they are reported as a *MismatchError once the script ends.
func (u *Runner) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	err := scan(r, func(op Op) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return u.Apply(op, w)
	})
	if err != nil {
		return err
	}
	u.logger.Info("script done",
		zap.Int("size", u.table.Size()),
		zap.Int("capacity", u.table.Capacity()),
		zap.Int("mismatches", u.mismatches))
	if u.mismatches > 0 {
		return &MismatchError{Count: u.mismatches, First: u.first}
	}
	return nil
}

// Apply a single operation.
func (u *Runner) Apply(op Op, w io.Writer) error {
	u.logger.Debug("apply", zap.Int("line", op.Line), zap.Stringer("op", op))
	var result any
	switch op.Kind {
	case Insert:
		cap0 := u.table.Capacity()
		ok := u.table.Insert(op.Arg)
		if !ok {
			u.logger.Warn("probe sequence exhausted",
				zap.Int("line", op.Line), zap.Int("value", op.Arg), zap.Int("capacity", cap0))
		} else if u.ref != nil {
			u.ref.add(op.Arg)
		}
		if c := u.table.Capacity(); c != cap0 {
			u.logger.Info("table grew",
				zap.Int("line", op.Line), zap.Int("from", cap0), zap.Int("to", c), zap.Int("size", u.table.Size()))
		}
		result = ok
	case Remove:
		ok := u.table.Remove(op.Arg)
		if u.ref != nil && u.ref.remove(op.Arg) != ok {
			u.mismatch(op, fmt.Sprintf("remove returned %t", ok))
		}
		result = ok
	case Contains:
		result = u.table.Contains(op.Arg)
	case IndexOf:
		result = u.table.IndexOf(op.Arg)
	case Clear:
		u.table.Clear()
		if u.ref != nil {
			u.ref.clear()
		}
		result = "ok"
	case Size:
		result = u.table.Size()
	case Capacity:
		result = u.table.Capacity()
	case Empty:
		result = u.table.Empty()
	case Dump:
		return u.dump(w)
	case Copy:
		u.saved = u.table.Clone()
		if u.ref != nil {
			u.refSnap = u.ref.clone()
		}
		result = "ok"
	case Restore:
		if u.saved == nil {
			u.logger.Warn("restore without a copy", zap.Int("line", op.Line))
			result = "no snapshot"
			break
		}
		u.table.CopyFrom(u.saved)
		if u.ref != nil {
			u.ref = u.refSnap.clone()
		}
		result = "ok"
	default:
		return fmt.Errorf("line %d: unsupported operation %v", op.Line, op.Kind)
	}
	u.verify(op)
	_, err := fmt.Fprintf(w, "%v -> %v\n", op, result)
	return err
}

func (u *Runner) dump(w io.Writer) error {
	if !u.cfg.DumpSorted {
		_, err := fmt.Fprintln(w, u.table.String())
		return err
	}
	if _, err := fmt.Fprintf(w, "dump size %d capacity %d\n", u.table.Size(), u.table.Capacity()); err != nil {
		return err
	}
	return writeSorted(w, u.table)
}

// verify compares the table with the reference after op.
func (u *Runner) verify(op Op) {
	if u.ref == nil {
		return
	}
	if s := u.table.Size(); s != u.ref.total {
		u.mismatch(op, fmt.Sprintf("size %d, reference holds %d", s, u.ref.total))
	}
	if op.Kind.HasArg() {
		if has, want := u.table.Contains(op.Arg), u.ref.count(op.Arg) > 0; has != want {
			u.mismatch(op, fmt.Sprintf("contains %d is %t, reference says %t", op.Arg, has, want))
		}
	}
}

func (u *Runner) mismatch(op Op, msg string) {
	u.mismatches++
	if u.first == "" {
		u.first = fmt.Sprintf("line %d %v: %s", op.Line, op, msg)
	}
	u.logger.Error("mismatch", zap.Int("line", op.Line), zap.Stringer("op", op), zap.String("detail", msg))
}
