package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsUnwrap(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{NewResourceNotFoundError("student missing"), ErrResourceNotFound},
		{NewConflictError("already graduated"), ErrConflict},
		{NewForbiddenError("wrong department"), ErrForbiddenAction},
		{NewDuplicateActionError("already voted"), ErrDuplicateAction},
		{NewBadRequestError("bad grade range"), ErrBadRequest},
	}

	for _, tc := range cases {
		assert.ErrorIs(t, tc.err, tc.kind)
		assert.NotErrorIs(t, tc.err, errors.New("unrelated"))
	}
}

func TestCustomErrorMessage(t *testing.T) {
	err := NewConflictError("already graduated")
	assert.Equal(t, "already graduated", err.Error())

	bare := &CustomError{Err: ErrConflict}
	assert.Equal(t, "conflict", bare.Error())

	empty := &CustomError{}
	assert.Equal(t, "unknown error", empty.Error())
}

func TestWithCode(t *testing.T) {
	err := &CustomError{Err: ErrBadRequest, Message: "invalid grade"}
	assert.Equal(t, "RES_004", err.WithCode("RES_004").Code)
}
