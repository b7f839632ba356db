package service

import (
	"testing"

	errors "github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
)

func TestIsCodeThroughWrapping(t *testing.T) {
	err := errors.Wrap(NewError(ErrCodeNotFound, "gone"), "fetch")
	require.True(t, IsCode(err, ErrCodeNotFound))
	require.False(t, IsCode(err, ErrCodeConflict))

	typed, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, ErrCodeNotFound, typed.Code)
	require.Equal(t, "gone", typed.Message)
}

func TestIsCodePlainError(t *testing.T) {
	require.False(t, IsCode(errors.New("boom"), ErrCodeNotFound))
	require.False(t, IsCode(nil, ErrCodeNotFound))
}
