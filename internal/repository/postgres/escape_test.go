package postgres

import "testing"

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"silva":   "silva",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q; want %q", in, got, want)
		}
	}
}
