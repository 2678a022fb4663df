// internal/apperrors/errors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(InvalidInput("bad")))
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("missing")))
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden("no")))
	assert.Equal(t, http.StatusConflict, StatusOf(Conflict("dup")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(Internal("boom", nil)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestStatusOfWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("missing"))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestMessageOfNeverLeaksInternals(t *testing.T) {
	cause := errors.New("pq: connection refused at 10.0.0.5")
	err := Internal("database error", cause)

	assert.Equal(t, "internal server error", MessageOf(err))
	assert.Equal(t, "internal server error", MessageOf(errors.New("raw")))
	assert.Equal(t, "missing", MessageOf(NotFound("missing")))
}

func TestFromDB(t *testing.T) {
	assert.NoError(t, FromDB(nil, "x"))

	err := FromDB(gorm.ErrRecordNotFound, "shop not found")
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
	assert.Equal(t, "shop not found", MessageOf(err))
	assert.True(t, IsNotFound(err))

	err = FromDB(gorm.ErrDuplicatedKey, "x")
	assert.Equal(t, http.StatusConflict, StatusOf(err))

	err = FromDB(errors.New("disk on fire"), "x")
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, "internal server error", MessageOf(err))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := Internal("wrapped", cause)
	assert.ErrorIs(t, err, cause)
}
