package entities

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckErrorKind(t *testing.T) {
	cause := errors.New("Timeout 5000ms exceeded")
	err := fmt.Errorf("failed to click: %w", NewCheckError(ErrElementNotFound, "css=#login", "one visible element", "no element", cause))

	assert.ErrorIs(t, err, ErrElementNotFound)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrAssertionFailed)

	var ce *CheckError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "css=#login", ce.Target)
	assert.Equal(t, "element not found: css=#login: expected one visible element, actual no element: Timeout 5000ms exceeded", ce.Error())
}

func TestReclassify(t *testing.T) {
	original := NewCheckError(ErrElementNotFound, "label", "visible", "hidden", nil)
	err := Reclassify(original, ErrStateTimeout, "other")

	assert.ErrorIs(t, err, ErrStateTimeout)
	assert.NotErrorIs(t, err, ErrElementNotFound)
	assert.Equal(t, ErrElementNotFound, original.Kind, "original is untouched")

	var ce *CheckError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "label", ce.Target)

	plain := Reclassify(errors.New("boom"), ErrNavigationTimeout, "url")
	assert.ErrorIs(t, plain, ErrNavigationTimeout)
	assert.Nil(t, Reclassify(nil, ErrStateTimeout, "x"))
}

func TestFailureKind(t *testing.T) {
	assert.Equal(t, ErrStateTimeout, FailureKind(fmt.Errorf("step: %w", NewCheckError(ErrStateTimeout, "", "", "", nil))))
	assert.Nil(t, FailureKind(errors.New("plain")))
	assert.Nil(t, FailureKind(nil))
}
