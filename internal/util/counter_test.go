package util

import "testing"

func TestCounterMostCommon(t *testing.T) {
	c := NewCounter()
	c.AddAll([]string{"laser", "photon", "laser", "cavity", "photon", "laser"})

	top := c.MostCommon(2)
	if len(top) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(top))
	}
	if top[0].Key != "laser" || top[0].Count != 3 {
		t.Errorf("Expected laser=3 first, got %s=%d", top[0].Key, top[0].Count)
	}
	if top[1].Key != "photon" || top[1].Count != 2 {
		t.Errorf("Expected photon=2 second, got %s=%d", top[1].Key, top[1].Count)
	}
}

func TestCounterMostCommon_TiesKeepFirstSeenOrder(t *testing.T) {
	c := NewCounter()
	c.AddAll([]string{"beta", "alpha", "gamma"})
	c.AddN("rare", 5)

	got := c.MostCommon(-1)
	want := []string{"rare", "beta", "alpha", "gamma"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d pairs, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Key != w {
			t.Errorf("Position %d: expected %s, got %s", i, w, got[i].Key)
		}
	}
}

func TestCounterKeysAndCount(t *testing.T) {
	c := NewCounter()
	c.Add("x")
	c.AddN("y", 4)
	c.Add("x")

	if c.Len() != 2 {
		t.Errorf("Expected 2 distinct keys, got %d", c.Len())
	}
	if c.Count("x") != 2 || c.Count("y") != 4 {
		t.Errorf("Unexpected counts: x=%d y=%d", c.Count("x"), c.Count("y"))
	}
	if c.Count("missing") != 0 {
		t.Errorf("Absent key should count 0, got %d", c.Count("missing"))
	}
	keys := c.Keys()
	if len(keys) != 2 || keys[0] != "x" || keys[1] != "y" {
		t.Errorf("Expected first-seen key order [x y], got %v", keys)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "abc", 10, "abc"},
		{"exact limit", "abcde", 5, "abcde"},
		{"truncated", "abcdefgh", 3, "abc"},
		{"multibyte", "αβγδε", 3, "αβγ"},
		{"empty", "", 4, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.in, tt.n); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRounding(t *testing.T) {
	if got := Round1(2.35); got != 2.4 {
		t.Errorf("Round1(2.35): expected 2.4, got %v", got)
	}
	if got := Round1(-2.35); got != -2.4 {
		t.Errorf("Round1(-2.35): expected -2.4, got %v", got)
	}
	if got := Round2(0.125); got != 0.13 {
		t.Errorf("Round2(0.125): expected 0.13, got %v", got)
	}
	if got := Round2(1.0); got != 1.0 {
		t.Errorf("Round2(1.0): expected 1.0, got %v", got)
	}
}
