// ABOUTME: Tests for the Toggle cell and the ordered Set
// ABOUTME: Covers flip semantics, insertion order and copy isolation
package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleFlip(t *testing.T) {
	var tg Toggle
	assert.False(t, tg.On())
	assert.True(t, tg.Flip())
	assert.False(t, tg.Flip())
	tg.Set(true)
	assert.True(t, tg.On())
}

func TestSetKeepsInsertionOrder(t *testing.T) {
	s := NewSet(3, 1, 2, 1)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{3, 1, 2}, s.Items())

	assert.False(t, s.Toggle(1))
	assert.Equal(t, []int{3, 2}, s.Items())
	assert.True(t, s.Toggle(1))
	assert.Equal(t, []int{3, 2, 1}, s.Items())
}

func TestSetZeroValue(t *testing.T) {
	var s Set[string]
	assert.False(t, s.Has("x"))
	assert.Nil(t, s.Items())
	assert.False(t, s.Remove("x"))
	assert.True(t, s.Add("x"))
	assert.False(t, s.Add("x"))
}

func TestSetCloneIsIndependent(t *testing.T) {
	a := NewSet(1, 2)
	b := a.Clone()
	b.Toggle(3)
	b.Remove(1)

	assert.Equal(t, []int{1, 2}, a.Items())
	assert.Equal(t, []int{2, 3}, b.Items())
}

func TestSetValueCopiesStayConsistent(t *testing.T) {
	a := NewSet("email", "whatsapp")
	b := a

	b.Remove("email")
	assert.True(t, a.Has("email"))
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"whatsapp"}, b.Items())

	b.Add("linkedin")
	assert.False(t, a.Has("linkedin"))
	assert.Equal(t, []string{"email", "whatsapp"}, a.Items())
	assert.Equal(t, []string{"whatsapp", "linkedin"}, b.Items())
}
