package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEntity(t *testing.T) {
	candidates := []Candidate{
		{ID: "g1", Title: "Learn React from scratch"},
		{ID: "g2", Title: "Exercise daily"},
	}

	match, ok := ResolveEntity("React", candidates)
	assert.True(t, ok)
	assert.Equal(t, "g1", match.ID)

	_, ok = ResolveEntity("Piano", candidates)
	assert.False(t, ok)
}

func TestResolveEntity_BidirectionalContainment(t *testing.T) {
	candidates := []Candidate{{ID: "t1", Title: "laundry"}}

	// Fragment contains the stored title.
	match, ok := ResolveEntity("the laundry task from yesterday", candidates)
	assert.True(t, ok)
	assert.Equal(t, "t1", match.ID)

	// Stored title contains the fragment, case-insensitively.
	candidates = []Candidate{{ID: "t2", Title: "Do the Laundry before Sunday"}}
	match, ok = ResolveEntity("LAUNDRY", candidates)
	assert.True(t, ok)
	assert.Equal(t, "t2", match.ID)
}

func TestResolveEntity_FirstMatchWins(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Title: "Read a book"},
		{ID: "b", Title: "Read the docs"},
	}
	match, ok := ResolveEntity("read", candidates)
	assert.True(t, ok)
	assert.Equal(t, "a", match.ID)
}

func TestResolveEntity_EmptyInputs(t *testing.T) {
	_, ok := ResolveEntity("  ", []Candidate{{ID: "a", Title: "x"}})
	assert.False(t, ok)

	_, ok = ResolveEntity("x", nil)
	assert.False(t, ok)

	// Blank titles never match, even though "" is contained in everything.
	_, ok = ResolveEntity("anything", []Candidate{{ID: "a", Title: "  "}})
	assert.False(t, ok)
}
