package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "trims whitespace",
			in:   []string{" go ", "backend"},
			want: []string{"go", "backend"},
		},
		{
			name: "drops case-insensitive duplicates keeping first spelling",
			in:   []string{"React", "react", "REACT", "vue"},
			want: []string{"React", "vue"},
		},
		{
			name: "drops empty entries",
			in:   []string{"", "  ", "go"},
			want: []string{"go"},
		},
		{
			name: "nil input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestCountTags(t *testing.T) {
	got := CountTags(
		[]string{"Music", "strings"},
		[]string{"music", "keys"},
		[]string{" MUSIC ", "keys"},
	)

	assert.Equal(t, []TagCount{
		{Tag: "Music", Count: 3},
		{Tag: "keys", Count: 2},
		{Tag: "strings", Count: 1},
	}, got)
}

func TestCountTagsTieBreaksAlphabetically(t *testing.T) {
	got := CountTags([]string{"zeta", "alpha"})

	assert.Equal(t, []TagCount{
		{Tag: "alpha", Count: 1},
		{Tag: "zeta", Count: 1},
	}, got)
}
