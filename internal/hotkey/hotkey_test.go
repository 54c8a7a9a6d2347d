package hotkey

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		wantMods []string
		wantKey  string
		wantStr  string
	}{
		{"shift+d", []string{"shift"}, "D", "shift+d"},
		{"D", nil, "D", "d"},
		{"cmd+Shift+5", []string{"shift", "super"}, "5", "shift+super+5"},
		{" alt + ctrl + F12 ", []string{"ctrl", "alt"}, "F12", "ctrl+alt+f12"},
		{"control+space", []string{"ctrl"}, "SPACE", "ctrl+space"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			b, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !reflect.DeepEqual(b.Mods, tc.wantMods) || b.Key != tc.wantKey {
				t.Fatalf("got %+v", b)
			}
			if b.String() != tc.wantStr {
				t.Fatalf("String = %q, want %q", b.String(), tc.wantStr)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "shift+", "shift", "a+b", "shift+F13", "F01", "ctrl+pageup"} {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); err == nil {
				t.Fatalf("expected error for %q", in)
			}
		})
	}
}
