package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Dune", "dune"},
		{"The Left Hand of Darkness", "the-left-hand-of-darkness"},
		{"  Foundation & Empire  ", "foundation-empire"},
		{"C++ Primer (5th Edition)", "c-primer-5th-edition"},
		{"---", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, slugify(tc.in), "slugify(%q)", tc.in)
	}
}
