// Package jsoncons implements RFC 6902 JSON Patch apply and diff, RFC 9535
// JSONPath parsing and evaluation, and a total-ordering JSON value
// comparator, all addressed through RFC 6901 JSON Pointer over a mutable
// document builder.
package jsoncons

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agentflare-ai/go-jsoncons/internal/diffengine"
	"github.com/agentflare-ai/go-jsoncons/internal/patchengine"
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

// Operation is a single JSON Patch step. It round-trips through
// encoding/json with the same field tags RFC 6902 documents use.
type Operation struct {
	Op    Op     `json:"op"`
	Path  string `json:"path"`
	From  string `json:"from,omitempty"`
	Value any    `json:"value,omitempty"`
}

// Patch is an ordered sequence of Operations, applied left to right.
type Patch []Operation

// PatchError reports a failed patch application; it is never panicked.
// See internal/patchengine.Error for the Kind enumeration.
type PatchError = patchengine.Error

// PatchErrorKind classifies why a patch application failed.
type PatchErrorKind = patchengine.ErrorKind

const (
	InvalidPatch  = patchengine.InvalidPatch
	TestFailed    = patchengine.TestFailed
	AddFailed     = patchengine.AddFailed
	RemoveFailed  = patchengine.RemoveFailed
	ReplaceFailed = patchengine.ReplaceFailed
	MoveFailed    = patchengine.MoveFailed
	CopyFailed    = patchengine.CopyFailed
)

func toEngineOp(op Op) patchengine.Op { return patchengine.Op(op) }

func toEnginePatch(p Patch) patchengine.Patch {
	out := make(patchengine.Patch, len(p))
	for i, op := range p {
		out[i] = patchengine.Operation{Op: toEngineOp(op.Op), Path: op.Path, From: op.From, Value: op.Value}
	}
	return out
}

func fromEnginePatch(p patchengine.Patch) Patch {
	out := make(Patch, len(p))
	for i, op := range p {
		out[i] = Operation{Op: Op(op.Op), Path: op.Path, From: op.From, Value: op.Value}
	}
	return out
}

// Apply applies patch to source and returns the resulting Document. source
// is never mutated; on any operation failure Apply returns the first
// PatchError and source's caller-visible state is unaffected.
func Apply(source Document, patch Patch) (Document, error) {
	v, err := value.FromAny(source.Raw())
	if err != nil {
		return Document{}, fmt.Errorf("jsoncons: invalid source document: %w", err)
	}
	b := value.NewBuilderFromValue(v)
	if err := patchengine.Apply(b, toEnginePatch(patch)); err != nil {
		return Document{}, err
	}
	doc, err := b.ToDocument()
	if err != nil {
		return Document{}, fmt.Errorf("jsoncons: materializing result: %w", err)
	}
	return NewDocument(doc), nil
}

// ApplyStream decodes a document from r, applies patch, and encodes the
// result to w. It avoids marshalling the intermediate document to a byte
// slice, the same tradeoff the teacher's ApplyStream makes for large
// documents.
func ApplyStream(r io.Reader, w io.Writer, patch Patch) error {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("jsoncons: decoding document: %w", err)
	}
	result, err := Apply(NewDocument(doc), patch)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(result.Raw())
}

// DiffOptions configures New/NewWithOptions's array diff strategy.
type DiffOptions struct {
	// Compact switches from the spec-exact prefix diff to an LCS-based edit
	// script that can be materially shorter for arrays whose elements
	// merely moved, at the cost of not preserving prefix-recursion shape.
	Compact bool
}

// New computes the RFC 6902 patch that transforms source into target, using
// the spec-exact prefix diff for arrays.
func New(source, target Document) (Patch, error) {
	return NewWithOptions(source, target, DiffOptions{})
}

// NewWithOptions computes the RFC 6902 patch that transforms source into
// target, using the array diff strategy named by opts.
func NewWithOptions(source, target Document, opts DiffOptions) (Patch, error) {
	sv, err := value.FromAny(source.Raw())
	if err != nil {
		return nil, fmt.Errorf("jsoncons: invalid source document: %w", err)
	}
	tv, err := value.FromAny(target.Raw())
	if err != nil {
		return nil, fmt.Errorf("jsoncons: invalid target document: %w", err)
	}
	p, err := diffengine.DiffWithOptions(sv, tv, diffengine.Options{Compact: opts.Compact})
	if err != nil {
		return nil, err
	}
	return fromEnginePatch(p), nil
}
