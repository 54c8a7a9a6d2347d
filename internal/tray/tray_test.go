package tray

import "testing"

func TestItems(t *testing.T) {
	tests := []struct {
		name   string
		hotkey string
		want   string
	}{
		{"without hotkey", "", "Capture"},
		{"with hotkey", "shift+d", "Capture (shift+d)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items := (&Tray{Hotkey: tc.hotkey}).Items()
			if len(items) != 2 {
				t.Fatalf("got %d items", len(items))
			}
			if items[0].Title != tc.want {
				t.Fatalf("capture title = %q, want %q", items[0].Title, tc.want)
			}
			if items[1].Title != "Quit" {
				t.Fatalf("quit title = %q", items[1].Title)
			}
		})
	}
}
