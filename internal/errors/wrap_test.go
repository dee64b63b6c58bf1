package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("preserves the sentinel", func(t *testing.T) {
		err := Wrap(ErrModuleNotFound, "resolving request")
		require.Error(t, err)

		assert.ErrorIs(t, err, ErrModuleNotFound)
		assert.Contains(t, err.Error(), "resolving request")
	})

	t.Run("nil error yields nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})
}

func TestWrapf(t *testing.T) {
	t.Run("formats and preserves the chain", func(t *testing.T) {
		inner := Wrap(ErrInvalidPoint, "left operand")
		err := Wrapf(inner, "adding points for %q", "verify")
		require.Error(t, err)

		assert.ErrorIs(t, err, ErrInvalidPoint)
		assert.Contains(t, err.Error(), `adding points for "verify"`)
		assert.Contains(t, err.Error(), "left operand")
	})

	t.Run("nil error yields nil", func(t *testing.T) {
		assert.NoError(t, Wrapf(nil, "context %d", 1))
	})
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrModuleNotFound,
		ErrMalformedSignature,
		ErrInvalidPoint,
		ErrInvalidScalar,
		ErrSignerKeyMissing,
		ErrSignerKeyInvalid,
		ErrInvalidParams,
		ErrDigestLength,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, stderrors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
