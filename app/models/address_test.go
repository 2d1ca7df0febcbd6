package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intp(n int) *int { return &n }

func TestBlockString(t *testing.T) {
	tests := []struct {
		name string
		addr StructuredAddress
		want string
	}{
		{"full triple", StructuredAddress{Chome: intp(1), Banchi: intp(4), Go: intp(5)}, "1-4-5"},
		{"chome and banchi", StructuredAddress{Chome: intp(2), Banchi: intp(7)}, "2-7"},
		{"chome only", StructuredAddress{Chome: intp(3)}, "3"},
		{"gap stops rendering", StructuredAddress{Banchi: intp(9), Go: intp(1)}, ""},
		{"no block", StructuredAddress{Remainder: "神南"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.addr.BlockString())
		})
	}
}

func TestHasBlock(t *testing.T) {
	assert.False(t, StructuredAddress{}.HasBlock())
	assert.True(t, StructuredAddress{Go: intp(1)}.HasBlock())
	assert.True(t, StructuredAddress{Chome: intp(1)}.HasBlock())
}

func TestLevelMatchesCount(t *testing.T) {
	assert.Equal(t, 0, LevelMatches{}.Count())
	assert.Equal(t, 2, LevelMatches{Chome: true, Go: true}.Count())
	assert.Equal(t, 3, LevelMatches{Chome: true, Banchi: true, Go: true}.Count())
}
