// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestDeterministicEncoding(t *testing.T) {
	// Map keys must be sorted regardless of insertion order.
	a, err := Marshal(map[string]int{"zebra": 1, "apple": 2, "mango": 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b, err := Marshal(map[string]int{"apple": 2, "mango": 3, "zebra": 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("same logical map produced different encodings:\n%x\n%x", a, b)
	}
}

func TestTimeEncodesAsText(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	data, err := Marshal(struct {
		At time.Time `cbor:"at"`
	}{At: ts})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	diag, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(diag, "2026-03-14T09:26:53Z") {
		t.Errorf("timestamp not encoded as RFC 3339 text: %s", diag)
	}

	var decoded struct {
		At time.Time `cbor:"at"`
	}
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.At.Equal(ts) {
		t.Errorf("round-trip changed timestamp: got %v, want %v", decoded.At, ts)
	}
}

func TestDefaultMapType(t *testing.T) {
	data, err := Marshal(map[string]any{"outer": map[string]any{"inner": "value"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	outer, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded to %T, want map[string]any", decoded)
	}
	if _, ok := outer["outer"].(map[string]any); !ok {
		t.Errorf("nested map decoded to %T, want map[string]any", outer["outer"])
	}
}

func TestStreamRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, v := range []string{"first", "second", "third"} {
		if err := enc.Encode(v); err != nil {
			t.Fatalf("Encode(%q): %v", v, err)
		}
	}
	dec := NewDecoder(&buf)
	for _, want := range []string{"first", "second", "third"} {
		var got string
		if err := dec.Decode(&got); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got != want {
			t.Errorf("decoded %q, want %q", got, want)
		}
	}
}
