package main

import (
	"testing"

	"github.com/peragwin/spacerobot/control"
)

func TestDescribe(t *testing.T) {
	r := control.NewRouter(10)
	r.Bind(21, "visualizer select", func(int) {})

	cases := []struct {
		ch, cc, val int
		exp         string
	}{
		{10, 21, 2, "ch 11  cc  21  value   2  visualizer select"},
		{10, 22, 127, "ch 11  cc  22  value 127  (unbound)"},
		{3, 21, 2, "ch  4  cc  21  value   2  (ignored, listening on channel 11)"},
	}
	for _, c := range cases {
		if got := describe(r, c.ch, c.cc, c.val); got != c.exp {
			t.Errorf("expected %q, got %q", c.exp, got)
		}
	}
}
