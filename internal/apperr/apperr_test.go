package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapKeepsSentinelReachable(t *testing.T) {
	sentinel := errors.New("store: boom")
	err := Wrap(Unavailable, fmt.Errorf("add item: %w", sentinel))

	if !errors.Is(err, sentinel) {
		t.Fatal("expected sentinel to stay reachable through Wrap")
	}
	if got := KindOf(err); got != Unavailable {
		t.Fatalf("expected Unavailable, got %v", got)
	}
}

func TestWrapDoesNotReclassify(t *testing.T) {
	err := New(InvalidArgument, "bad input")
	wrapped := Wrap(Internal, err)

	if got := KindOf(wrapped); got != InvalidArgument {
		t.Fatalf("expected the original InvalidArgument kind, got %v", got)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(Internal, nil) != nil {
		t.Fatal("expected nil for nil input")
	}
}

func TestKindOfPlainError(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != Unknown {
		t.Fatalf("expected Unknown, got %v", got)
	}
}
