package mboxevent

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
)

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		in   string
		host string
		port int
	}{
		{"203.0.113.5;993", "203.0.113.5", 993},
		{"203.0.113.5", "203.0.113.5", 0},
		{"mail.example.com;notaport", "mail.example.com", 0},
		{"::1;143", "::1", 143},
		{";993", "", 993},
	}
	for _, tt := range tests {
		host, port := splitAddress(tt.in)
		if host != tt.host || port != tt.port {
			t.Errorf("splitAddress(%q) = (%q, %d), want (%q, %d)",
				tt.in, host, port, tt.host, tt.port)
		}
	}
}

// docKeys returns the top-level object keys of a document, in wire order.
func docKeys(t *testing.T, payload []byte) []string {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(payload))
	var keys []string
	objDepth, arrDepth := 0, 0
	expectKey := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("scan document %s: %v", payload, err)
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				objDepth++
				expectKey = objDepth == 1 && arrDepth == 0
			case '}':
				objDepth--
			case '[':
				arrDepth++
			case ']':
				arrDepth--
				if objDepth == 1 && arrDepth == 0 {
					expectKey = true
				}
			}
		default:
			if objDepth == 1 && arrDepth == 0 {
				if expectKey {
					keys = append(keys, tok.(string))
				}
				expectKey = !expectKey
			}
		}
	}
	return keys
}

func TestEncodeKeyOrder(t *testing.T) {
	ctx := context.Background()
	n, sink := newTestNotifier(t)
	s := n.Session("bob")

	e := s.Add(KindMessageExpunge)
	e.ExtractRecord(testMailbox(), testRecord(10, "<a@example.com>"))
	e.ExtractMailbox(testMailbox())
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	keys := docKeys(t, sink.all()[0].payload)
	if len(keys) == 0 || keys[0] != "event" {
		t.Fatalf("expected event key first, got %v", keys)
	}

	// Every remaining key must appear in catalog order.
	order := make(map[string]int, numParams)
	for p := ParamID(0); p < numParams; p++ {
		order[p.Key()] = int(p)
	}
	last := -1
	for _, k := range keys[1:] {
		idx, ok := order[k]
		if !ok {
			t.Fatalf("key %q not in the catalog", k)
		}
		if idx < last {
			t.Fatalf("key %q out of catalog order in %v", k, keys)
		}
		last = idx
	}
}

func TestEncodeAddressSplit(t *testing.T) {
	ctx := context.Background()
	n, sink := newTestNotifier(t)
	s := n.Session("")

	e := s.Add(KindLogin)
	e.SetAccess("203.0.113.5;993", "198.51.100.7;54321", "bob", "")
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	doc := decodeDoc(t, sink.all()[0].payload)
	if doc["serverDomain"] != "203.0.113.5" {
		t.Errorf("expected serverDomain 203.0.113.5, got %v", doc["serverDomain"])
	}
	if doc["serverPort"] != float64(993) {
		t.Errorf("expected serverPort 993, got %v", doc["serverPort"])
	}
	if doc["clientIP"] != "198.51.100.7" {
		t.Errorf("expected clientIP 198.51.100.7, got %v", doc["clientIP"])
	}
	if doc["clientPort"] != float64(54321) {
		t.Errorf("expected clientPort 54321, got %v", doc["clientPort"])
	}
	if _, ok := doc["serverAddress"]; ok {
		t.Error("expected composite serverAddress to be absent from the document")
	}
	if _, ok := doc["clientAddress"]; ok {
		t.Error("expected composite clientAddress to be absent from the document")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	ctx := context.Background()
	n, sink := newTestNotifier(t)
	s := n.Session("bob")

	e := s.Add(KindMessageAppend)
	rec := testRecord(42, "<a@example.com>")
	rec.Env = []byte(`("Sat, 30 Aug 2026" "hello")`)
	e.ExtractRecord(testMailbox(), rec)
	e.AddFlag(`\Flagged`)
	e.ExtractMailbox(testMailbox())
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	docs := sink.all()
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	doc := decodeDoc(t, docs[0].payload)

	if doc["event"] != "MessageAppend" {
		t.Errorf("expected event MessageAppend, got %v", doc["event"])
	}
	if doc["messageSize"] != float64(2048) {
		t.Errorf("expected messageSize 2048, got %v", doc["messageSize"])
	}
	if doc["vnd.cmu.cid"] != "000000000000beef" {
		t.Errorf("expected zero-padded cid, got %v", doc["vnd.cmu.cid"])
	}
	if doc["vnd.cmu.envelope"] != `("Sat, 30 Aug 2026" "hello")` {
		t.Errorf("unexpected envelope %v", doc["vnd.cmu.envelope"])
	}
	// Append carries its flags as an ordinary parameter, it never splits.
	if doc["flagNames"] != `\Flagged` {
		t.Errorf("expected flagNames \\Flagged, got %v", doc["flagNames"])
	}
	if _, ok := doc["uidset"]; ok {
		t.Error("expected no uidset; the uid lives in the uri")
	}
	mids, ok := doc["vnd.cmu.midset"].([]any)
	if !ok || len(mids) != 1 || mids[0] != "<a@example.com>" {
		t.Errorf("unexpected midset %v", doc["vnd.cmu.midset"])
	}
}
