package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		" WARN ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"":        logrus.InfoLevel,
		"verbose": logrus.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestNewWritesJSON(t *testing.T) {
	l := New("info")
	var buf bytes.Buffer
	l.SetOutput(&buf)
	Error(l, "provider failed", errors.New("boom"), Fields{"request_id": "abc"})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not json: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "provider failed" || entry["error"] != "boom" || entry["request_id"] != "abc" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	Info(l, "ignored", nil)
}
