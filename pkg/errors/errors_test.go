package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	err := fmt.Errorf("outer: %w", Clone(ErrNotFound, "hall ticket not found"))
	appErr := FromError(err)
	assert.Equal(t, ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "hall ticket not found", appErr.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "internal server error: boom", appErr.Error())
}

func TestIsMatchesByCode(t *testing.T) {
	assert.True(t, errors.Is(Clone(ErrForbidden, "nope"), ErrForbidden))
	assert.True(t, errors.Is(WrapAs(ErrEvidenceUpload, errors.New("disk full"), ""), ErrEvidenceUpload))
	assert.False(t, errors.Is(ErrForbidden, ErrUnauthenticated))
}
