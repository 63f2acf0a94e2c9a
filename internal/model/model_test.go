package model

import (
	"encoding/json"
	"testing"
)

func TestEndTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start string
		mins  int
		want  string
	}{
		{"07:30", 45, "08:15"},
		{"23:30", 90, "01:00"},
		{"00:00", 0, "00:00"},
		{"12:00", 24 * 60, "12:00"},
		{"23:59", 1, "00:00"},
		{"7:30", 10, ""},
		{"", 10, ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.start, func(t *testing.T) {
			t.Parallel()
			if got := EndTime(tt.start, tt.mins); got != tt.want {
				t.Fatalf("EndTime(%q, %d) = %q; want %q", tt.start, tt.mins, got, tt.want)
			}
		})
	}
}

func TestParseClock_Rejects(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"24:00", "12:60", "ab:cd", "1230", "12-30", " "} {
		if _, err := ParseClock(s); err == nil {
			t.Fatalf("ParseClock(%q): expected error", s)
		}
	}
}

func TestQuantity_JSON(t *testing.T) {
	t.Parallel()

	var r Requirement
	if err := json.Unmarshal([]byte(`{"name":"Eggs","qty":2,"unit":"pcs"}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !r.Qty.Set || r.Qty.Value != 2 {
		t.Fatalf("expected qty 2; got %#v", r.Qty)
	}

	for _, raw := range []string{`{"name":"Pen","qty":""}`, `{"name":"Pen","qty":null}`, `{"name":"Pen"}`} {
		var r Requirement
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if r.Qty.Set {
			t.Fatalf("%s: expected unspecified qty; got %#v", raw, r.Qty)
		}
	}

	var zero Requirement
	if err := json.Unmarshal([]byte(`{"name":"Pen","qty":"0"}`), &zero); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !zero.Qty.Set || zero.Qty.Value != 0 {
		t.Fatalf("expected explicit zero; got %#v", zero.Qty)
	}

	b, err := json.Marshal(Requirement{Name: "Pen"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"name":"Pen","qty":"","unit":""}` {
		t.Fatalf("unexpected encoding: %s", b)
	}

	if err := json.Unmarshal([]byte(`{"name":"Pen","qty":"lots"}`), &r); err == nil {
		t.Fatalf("expected error for non-numeric qty")
	}
}

func TestFormatQty(t *testing.T) {
	t.Parallel()

	if got := FormatQty(6, "pcs"); got != "6 pcs" {
		t.Fatalf("got %q", got)
	}
	if got := FormatQty(1.5, ""); got != "1.5" {
		t.Fatalf("got %q", got)
	}
	if got := CoerceQuantity("abc"); got != 0 {
		t.Fatalf("CoerceQuantity(abc) = %v", got)
	}
	if got := CoerceQuantity("-3"); got != 0 {
		t.Fatalf("CoerceQuantity(-3) = %v", got)
	}
}

func TestNewTaskID(t *testing.T) {
	t.Parallel()

	a, b := NewTaskID(), NewTaskID()
	if a == b {
		t.Fatalf("expected distinct ids; got %q twice", a)
	}
	if !IsTaskID(a) || len(a) != len("task-")+12 {
		t.Fatalf("unexpected id shape %q", a)
	}
}
