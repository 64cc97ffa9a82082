package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		max  int
		want []string
	}{
		{
			name: "lowercases and trims",
			in:   []string{"  Go  ", "Web-Design"},
			max:  10,
			want: []string{"go", "web-design"},
		},
		{
			name: "drops blanks",
			in:   []string{"", "   ", "ok"},
			max:  10,
			want: []string{"ok"},
		},
		{
			name: "drops disallowed characters",
			in:   []string{"C++ <script>", "rust"},
			max:  10,
			want: []string{"rust"},
		},
		{
			name: "keeps inner whitespace",
			in:   []string{"distributed systems"},
			max:  10,
			want: []string{"distributed systems"},
		},
		{
			name: "keeps duplicates as authored",
			in:   []string{"go", "Go", "go"},
			max:  10,
			want: []string{"go", "go", "go"},
		},
		{
			name: "cap applies after filtering",
			in:   []string{"???", "a", "b", "c"},
			max:  2,
			want: []string{"a", "b"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeTags(tc.in, tc.max))
		})
	}
}

func TestNormalizeTagsCap(t *testing.T) {
	in := make([]string, 0, 14)
	for i := 0; i < 14; i++ {
		in = append(in, fmt.Sprintf("tag-%d", i))
	}
	got := NormalizeTags(in, 10)
	assert.Len(t, got, 10)
	assert.Equal(t, in[:10], got, "first ten in source order")
}
