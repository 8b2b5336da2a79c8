package applescript

import (
	"reflect"
	"testing"
	"time"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "Groceries", []string{"Groceries"}},
		{"plain", "a, b, c", []string{"a", "b", "c"}},
		{"quoted with comma", `"Meeting, notes", Ideas`, []string{"Meeting, notes", "Ideas"}},
		{"drops empties", "a, , b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseList(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRecord(t *testing.T) {
	got := ParseRecord(`{name:"Standup", id:x-coredata://123, container:{name:"Work"}}`)
	if got["name"] != "Standup" {
		t.Errorf("name = %q", got["name"])
	}
	if got["id"] != "x-coredata://123" {
		t.Errorf("id = %q", got["id"])
	}
	// Nested structures survive as verbatim text.
	if got["container"] != `{name:"Work"}` {
		t.Errorf("container = %q", got["container"])
	}
}

func TestParseRecord_NotARecord(t *testing.T) {
	if got := ParseRecord("plain text"); len(got) != 0 {
		t.Errorf("expected empty map, got %#v", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	out := "Monday, January 5, 2026 at 3:04:05 PM"
	got := ParseTimestamp(out)
	want := float64(time.Date(2026, 1, 5, 15, 4, 5, 0, time.Local).Unix())
	if got != want {
		t.Errorf("ParseTimestamp(%q) = %v, want %v", out, got, want)
	}
}

func TestParseTimestamp_DatePrefix(t *testing.T) {
	out := `date "Monday, January 5, 2026 at 3:04:05 PM"`
	if got := ParseTimestamp(out); got == 0 {
		t.Errorf("date-prefixed output should parse, got 0")
	}
}

func TestParseTimestamp_Unparsable(t *testing.T) {
	for _, out := range []string{"", "garbage", "missing value"} {
		if got := ParseTimestamp(out); got != 0 {
			t.Errorf("ParseTimestamp(%q) = %v, want 0", out, got)
		}
	}
}
