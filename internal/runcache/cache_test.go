package runcache

import "testing"

func TestKeyIsDeterministicAndContentSensitive(t *testing.T) {
	a := Key([]byte("same bytes"), 15)
	b := Key([]byte("same bytes"), 15)
	if a != b {
		t.Errorf("Key() not deterministic: %q != %q", a, b)
	}

	c := Key([]byte("different bytes"), 15)
	if a == c {
		t.Error("Key() collided across different content")
	}

	d := Key([]byte("same bytes"), 12)
	if a == d {
		t.Error("Key() collided across different target-credit parameters")
	}
}
