package jsoncons_test

import (
	"testing"

	"github.com/agentflare-ai/go-jsoncons"
)

func TestEqualStructural(t *testing.T) {
	a := jsoncons.NewDocument(map[string]any{"a": 1.0, "b": 2.0})
	b := jsoncons.NewDocument(map[string]any{"b": 2.0, "a": 1.0})
	if !jsoncons.Equal(a, b) {
		t.Fatalf("expected structural equality regardless of member order")
	}
}

func TestEqualFalseOnMismatch(t *testing.T) {
	a := jsoncons.NewDocument(map[string]any{"a": 1.0})
	b := jsoncons.NewDocument(map[string]any{"a": 2.0})
	if jsoncons.Equal(a, b) {
		t.Fatalf("expected inequality")
	}
}

func TestCompareTotalOrderKinds(t *testing.T) {
	ordered := []any{
		map[string]any{},
		[]any{},
		"s",
		1.0,
		true,
		false,
		nil,
	}
	for i := 0; i < len(ordered)-1; i++ {
		a := jsoncons.NewDocument(ordered[i])
		b := jsoncons.NewDocument(ordered[i+1])
		c, err := jsoncons.Compare(a, b)
		if err != nil {
			t.Fatalf("Compare error: %v", err)
		}
		if c >= 0 {
			t.Fatalf("expected ordered[%d] < ordered[%d], got cmp=%d", i, i+1, c)
		}
	}
}

func TestCompareEqualIsZero(t *testing.T) {
	a := jsoncons.NewDocument(map[string]any{"x": 1.0})
	b := jsoncons.NewDocument(map[string]any{"x": 1.0})
	c, err := jsoncons.Compare(a, b)
	if err != nil {
		t.Fatalf("Compare error: %v", err)
	}
	if c != 0 {
		t.Fatalf("expected 0, got %d", c)
	}
}
