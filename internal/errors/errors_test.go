package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := HeaderNotFound("a.csv", "As Of Date")
	wrapped := Wrap(base, "parse first source")

	assert.Equal(t, CodeHeaderNotFound, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "parse first source")
	assert.Contains(t, wrapped.Error(), `"As Of Date"`)
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := Wrapf(stderrors.New("boom"), "step %d", 2)

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "step 2: boom", wrapped.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestIOErrorUnwrapsToOSError(t *testing.T) {
	err := IOError("missing.csv", fs.ErrNotExist)

	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	assert.True(t, HasCode(Wrap(err, "load"), CodeIOError))
	assert.False(t, HasCode(err, CodeHeaderNotFound))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeExternalService, stderrors.New("connection reset"))

	assert.Equal(t, CodeExternalService, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
