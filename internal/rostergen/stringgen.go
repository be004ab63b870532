package rostergen

import (
	"fmt"
	"strings"
)

// StringDataGenerator produces plausible unique names by combining
// labeled word-part lists. The sequence is deterministic: value i is the
// mixed-radix decomposition of i over the part lists, with the last
// part varying fastest. Once the combination space is exhausted a
// numeric suffix keeps values unique.
type StringDataGenerator struct {
	separator string
	parts     [][]string
	index     int
}

func NewStringDataGenerator() *StringDataGenerator {
	return &StringDataGenerator{separator: " "}
}

func (g *StringDataGenerator) AddPart(options ...string) *StringDataGenerator {
	g.parts = append(g.parts, options)
	return g
}

// MaximumSize predicts how many values can be generated before names
// start carrying a disambiguating suffix.
func (g *StringDataGenerator) MaximumSize() int {
	if len(g.parts) == 0 {
		return 0
	}
	size := 1
	for _, part := range g.parts {
		size *= len(part)
	}
	return size
}

func (g *StringDataGenerator) NextValue() string {
	value := g.ValueAt(g.index)
	g.index++
	return value
}

func (g *StringDataGenerator) ValueAt(index int) string {
	maximum := g.MaximumSize()
	if maximum == 0 {
		return ""
	}
	cycle := index / maximum
	remainder := index % maximum

	words := make([]string, len(g.parts))
	for i := len(g.parts) - 1; i >= 0; i-- {
		length := len(g.parts[i])
		words[i] = g.parts[i][remainder%length]
		remainder /= length
	}

	value := strings.Join(words, g.separator)
	if cycle > 0 {
		value = fmt.Sprintf("%s %d", value, cycle+1)
	}
	return value
}

// Reset rewinds the sequence to the first value.
func (g *StringDataGenerator) Reset() {
	g.index = 0
}
