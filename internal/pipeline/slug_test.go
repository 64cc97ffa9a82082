package pipeline

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$|^$`)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already clean", "hello-world", "hello-world"},
		{"uppercase", "Hello-World", "hello-world"},
		{"spaces", "my first post", "my-first-post"},
		{"punctuation", "C++ & Go!", "c-go"},
		{"consecutive separators", "a -- b", "a-b"},
		{"leading trailing junk", "--hello--", "hello"},
		{"unicode letters dropped", "café au lait", "caf-au-lait"},
		{"digits kept", "2024 review", "2024-review"},
		{"empty", "", ""},
		{"only junk", "!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Slugify(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, Slugify(got), "must be idempotent")
			assert.Regexp(t, slugShape, got)
		})
	}
}
