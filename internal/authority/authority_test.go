package authority

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewSetParsesCSV(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	s := NewSet(a.String() + " , " + b.String() + ",, not-a-uuid")
	assert.True(t, s.IsAdmin(a))
	assert.True(t, s.IsAdmin(b))
	assert.False(t, s.IsAdmin(uuid.New()))
	assert.Len(t, s.Members(), 2)
}

func TestEmptySetDeniesEveryone(t *testing.T) {
	s := NewSet("")
	assert.False(t, s.IsAdmin(uuid.New()))
	assert.Empty(t, s.Members())

	var zero Set
	assert.False(t, zero.IsAdmin(uuid.New()))
}

func TestAddRemove(t *testing.T) {
	id := uuid.New()

	var s Set
	s.Add(id)
	assert.True(t, s.IsAdmin(id))

	s.Remove(id)
	assert.False(t, s.IsAdmin(id))
}
