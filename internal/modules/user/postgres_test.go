package user

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestViolationClassifiers(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))

	assert.True(t, isForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(&pq.Error{Code: "23505"}))

	assert.False(t, isUniqueViolation(errors.New("broken pipe")))
	assert.False(t, isForeignKeyViolation(nil))
}
