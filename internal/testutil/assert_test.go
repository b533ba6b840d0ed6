package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	chesserrors "github.com/lgbarn/chess-engine-go/internal/errors"
)

// Failure paths cannot be observed without a fake *testing.T, so these
// exercise the passing paths and the message formatting.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, 42, 42)
	AssertEqual(t, []string{"e2e4", "d2d4"}, []string{"e2e4", "d2d4"})
	AssertEqual(t, nil, nil)
}

func TestAssertEqual_WithOptions(t *testing.T) {
	AssertEqual(t, []string{"d2d4", "e2e4"}, []string{"e2e4", "d2d4"},
		cmpopts.SortSlices(func(a, b string) bool { return a < b }))
	AssertEqual(t, []int{}, []int(nil), cmpopts.EquateEmpty(), "empty move list")
}

func TestAssertNoError_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertNoError(t, nil, "move %d should be accepted", 3)
}

func TestAssertErrorIs_Success(t *testing.T) {
	wrapped := fmt.Errorf("ply 4: %w", chesserrors.ErrIllegalMove)
	AssertErrorIs(t, wrapped, chesserrors.ErrIllegalMove)
	AssertErrorIs(t, nil, nil)
}

func TestAssertTrueFalse_Success(t *testing.T) {
	AssertTrue(t, true)
	AssertTrue(t, len("e2e4") == 4, "uci length")
	AssertFalse(t, false)
	AssertFalse(t, 1 == 2)
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"move %s", "e2e4"}, "move e2e4"},
		{"format multiple", []interface{}{"%s %d %s", "ply", 42, "end"}, "ply 42 end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
