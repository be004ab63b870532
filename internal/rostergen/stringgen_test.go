package rostergen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringDataGeneratorLastPartVariesFastest(t *testing.T) {
	g := NewStringDataGenerator().
		AddPart("Red", "Blue").
		AddPart("fox", "owl", "elk")

	assert.Equal(t, 6, g.MaximumSize())

	want := []string{"Red fox", "Red owl", "Red elk", "Blue fox", "Blue owl", "Blue elk"}
	for _, expected := range want {
		assert.Equal(t, expected, g.NextValue())
	}
}

func TestStringDataGeneratorSuffixesAfterExhaustion(t *testing.T) {
	g := NewStringDataGenerator().
		AddPart("Red", "Blue").
		AddPart("fox")

	assert.Equal(t, "Red fox", g.NextValue())
	assert.Equal(t, "Blue fox", g.NextValue())
	assert.Equal(t, "Red fox 2", g.NextValue())
	assert.Equal(t, "Blue fox 2", g.NextValue())
	assert.Equal(t, "Red fox 3", g.NextValue())
}

func TestStringDataGeneratorValueAt(t *testing.T) {
	g := NewStringDataGenerator().
		AddPart("Red", "Blue").
		AddPart("fox", "owl")

	assert.Equal(t, "Red owl", g.ValueAt(1))
	assert.Equal(t, "Blue fox", g.ValueAt(2))
	// ValueAt does not advance the sequence
	assert.Equal(t, "Red fox", g.NextValue())
}

func TestStringDataGeneratorReset(t *testing.T) {
	g := NewStringDataGenerator().AddPart("Red", "Blue")

	assert.Equal(t, "Red", g.NextValue())
	assert.Equal(t, "Blue", g.NextValue())
	g.Reset()
	assert.Equal(t, "Red", g.NextValue())
}

func TestStringDataGeneratorEmpty(t *testing.T) {
	g := NewStringDataGenerator()
	assert.Equal(t, 0, g.MaximumSize())
	assert.Equal(t, "", g.NextValue())
}
