package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	id := New("cmp")
	assert.True(t, strings.HasPrefix(id, "cmp_"))
	assert.Len(t, id, len("cmp_")+26)
	assert.Equal(t, strings.ToLower(id), id)

	bare := New("")
	assert.Len(t, bare, 26)
}

func TestNewIsMonotonic(t *testing.T) {
	prev := New("")
	for i := 0; i < 100; i++ {
		next := New("")
		assert.Less(t, prev, next)
		prev = next
	}
}
