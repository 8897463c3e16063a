package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Fatalf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Fatalf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

func TestParseReportID(t *testing.T) {
	tests := []struct {
		input    string
		hasError bool
	}{
		{NewReportID().String(), false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, tt := range tests {
		_, err := ParseReportID(tt.input)
		assert.Equal(t, tt.hasError, err != nil, "input %q", tt.input)
	}
}

func TestHashDeterministic(t *testing.T) {
	a := NewHash([]byte("headers|rows"))
	b := NewHash([]byte("headers|rows"))
	c := NewHash([]byte("headers|rows2"))

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.Len(t, a.Short(), 12)
	assert.False(t, a.IsEmpty())
}

func TestArityErrorIsInvalidTable(t *testing.T) {
	err := NewArityError(3, 2, 4)
	assert.True(t, IsInvalidTable(err))
	assert.True(t, errors.Is(err, ErrRowArity))
	assert.Contains(t, err.Error(), "row 3 has 2 cells, want 4")
	assert.True(t, IsInvalidTable(NewDuplicateHeaderError("a")))
}
