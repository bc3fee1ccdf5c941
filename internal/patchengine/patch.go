// Package patchengine interprets an RFC 6902 patch array against a
// *value.Builder using the pointer package's edit primitives.
package patchengine

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/agentflare-ai/go-jsoncons/internal/compare"
	"github.com/agentflare-ai/go-jsoncons/internal/pointer"
	"github.com/agentflare-ai/go-jsoncons/internal/value"
)

// Op is one of the six RFC 6902 operation names.
type Op string

const (
	Add     Op = "add"
	Remove  Op = "remove"
	Replace Op = "replace"
	Move    Op = "move"
	Copy    Op = "copy"
	Test    Op = "test"
)

// Operation is a single patch step. Value holds the host `any` shape
// (the façade package decodes JSON into this before reaching patchengine).
type Operation struct {
	Op    Op
	Path  string
	From  string
	Value any
}

// Patch is an ordered sequence of Operations, applied left to right.
type Patch []Operation

// ErrorKind classifies why Apply failed.
type ErrorKind int

const (
	InvalidPatch ErrorKind = iota
	TestFailed
	AddFailed
	RemoveFailed
	ReplaceFailed
	MoveFailed
	CopyFailed
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidPatch:
		return "invalid patch"
	case TestFailed:
		return "test failed"
	case AddFailed:
		return "add failed"
	case RemoveFailed:
		return "remove failed"
	case ReplaceFailed:
		return "replace failed"
	case MoveFailed:
		return "move failed"
	case CopyFailed:
		return "copy failed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error reports a failed patch application. It carries the offending op's
// index, the op string, and a classifier, and wraps its cause (if any) with
// github.com/pkg/errors so %+v prints a stack trace to the failure site.
type Error struct {
	Index int
	Op    Op
	Kind  ErrorKind
	Path  string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("patch op %d (%s %q): %s: %v", e.Index, e.Op, e.Path, e.Kind, e.cause)
	}
	return fmt.Sprintf("patch op %d (%s %q): %s", e.Index, e.Op, e.Path, e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

func newError(index int, op Op, kind ErrorKind, path string, cause error) *Error {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &Error{Index: index, Op: op, Kind: kind, Path: path, cause: cause}
}

// Apply interprets patch against root in order, mutating root. On any
// failure root is restored to its pre-Apply state (snapshot/restore
// rollback, per spec.md §9) and the first failure is returned.
func Apply(root *value.Builder, patch Patch) error {
	snapshot := root.Clone()
	for i, op := range patch {
		if err := applyOne(root, op); err != nil {
			root.ReplaceSelf(snapshot)
			if pe, ok := err.(*Error); ok {
				pe.Index = i
				return pe
			}
			return err
		}
	}
	return nil
}

func applyOne(root *value.Builder, op Operation) error {
	switch op.Op {
	case Test:
		return applyTest(root, op)
	case Add:
		return applyAdd(root, op)
	case Remove:
		return applyRemove(root, op)
	case Replace:
		return applyReplace(root, op)
	case Move:
		return applyMove(root, op)
	case Copy:
		return applyCopy(root, op)
	default:
		return newError(0, op.Op, InvalidPatch, op.Path, fmt.Errorf("unsupported op %q", op.Op))
	}
}

func parsePath(op Operation, kind ErrorKind, path string) (pointer.Pointer, error) {
	p, ok := pointer.Parse(path)
	if !ok {
		return nil, newError(0, op.Op, InvalidPatch, path, fmt.Errorf("malformed pointer %q", path))
	}
	_ = kind
	return p, nil
}

func buildValue(op Operation, kind ErrorKind) (*value.Builder, error) {
	v, err := value.FromAny(op.Value)
	if err != nil {
		return nil, newError(0, op.Op, InvalidPatch, op.Path, err)
	}
	return value.NewBuilderFromValue(v), nil
}

func applyTest(root *value.Builder, op Operation) error {
	p, err := parsePath(op, TestFailed, op.Path)
	if err != nil {
		return err
	}
	sub, ok := pointer.TryGet(root, p)
	if !ok {
		return newError(0, op.Op, TestFailed, op.Path, fmt.Errorf("path not found"))
	}
	expected, err := value.FromAny(op.Value)
	if err != nil {
		return newError(0, op.Op, InvalidPatch, op.Path, err)
	}
	eq, err := compare.EqualStrict(sub.ToValue(), expected)
	if err != nil {
		return newError(0, op.Op, TestFailed, op.Path, err)
	}
	if !eq {
		return newError(0, op.Op, TestFailed, op.Path, fmt.Errorf("value mismatch"))
	}
	return nil
}

func applyAdd(root *value.Builder, op Operation) error {
	p, err := parsePath(op, AddFailed, op.Path)
	if err != nil {
		return err
	}
	child, err := buildValue(op, AddFailed)
	if err != nil {
		return err
	}
	if pointer.TryAddIfAbsent(root, p, child) {
		return nil
	}
	if pointer.TryReplace(root, p, child) {
		return nil
	}
	return newError(0, op.Op, AddFailed, op.Path, fmt.Errorf("could not insert or replace at %q", op.Path))
}

func applyRemove(root *value.Builder, op Operation) error {
	p, err := parsePath(op, RemoveFailed, op.Path)
	if err != nil {
		return err
	}
	if !pointer.TryRemove(root, p) {
		return newError(0, op.Op, RemoveFailed, op.Path, fmt.Errorf("path not found"))
	}
	return nil
}

func applyReplace(root *value.Builder, op Operation) error {
	p, err := parsePath(op, ReplaceFailed, op.Path)
	if err != nil {
		return err
	}
	child, err := buildValue(op, ReplaceFailed)
	if err != nil {
		return err
	}
	if !pointer.TryReplace(root, p, child) {
		return newError(0, op.Op, ReplaceFailed, op.Path, fmt.Errorf("path not found"))
	}
	return nil
}

// isProperPrefix reports whether from is a proper (strictly shorter) prefix
// of path, the condition RFC 6902 forbids for "move".
func isProperPrefix(from, path pointer.Pointer) bool {
	if len(from) >= len(path) {
		return false
	}
	for i := range from {
		if from[i] != path[i] {
			return false
		}
	}
	return true
}

func applyMove(root *value.Builder, op Operation) error {
	fp, err := parsePath(op, MoveFailed, op.From)
	if err != nil {
		return err
	}
	p, err := parsePath(op, MoveFailed, op.Path)
	if err != nil {
		return err
	}
	if isProperPrefix(fp, p) {
		return newError(0, op.Op, MoveFailed, op.Path, fmt.Errorf("from %q is a prefix of path %q", op.From, op.Path))
	}
	sub, ok := pointer.TryGet(root, fp)
	if !ok {
		return newError(0, op.Op, MoveFailed, op.From, fmt.Errorf("from path not found"))
	}
	_ = sub
	if !pointer.TryRemove(root, fp) {
		return newError(0, op.Op, MoveFailed, op.From, fmt.Errorf("could not remove source"))
	}
	moved := value.NewBuilderFromValue(sub.ToValue())
	if pointer.TryAddIfAbsent(root, p, moved) {
		return nil
	}
	if pointer.TryReplace(root, p, moved) {
		return nil
	}
	return newError(0, op.Op, MoveFailed, op.Path, fmt.Errorf("could not insert or replace at destination"))
}

func applyCopy(root *value.Builder, op Operation) error {
	fp, err := parsePath(op, CopyFailed, op.From)
	if err != nil {
		return err
	}
	p, err := parsePath(op, CopyFailed, op.Path)
	if err != nil {
		return err
	}
	sub, ok := pointer.TryGet(root, fp)
	if !ok {
		return newError(0, op.Op, CopyFailed, op.From, fmt.Errorf("from path not found"))
	}
	copied := value.NewBuilderFromValue(sub.ToValue())
	if pointer.TryAddIfAbsent(root, p, copied) {
		return nil
	}
	if pointer.TryReplace(root, p, copied) {
		return nil
	}
	return newError(0, op.Op, CopyFailed, op.Path, fmt.Errorf("could not insert or replace at destination"))
}
