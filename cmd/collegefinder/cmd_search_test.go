package main

import (
	"bytes"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HerbHall/collegefinder/pkg/college"
)

func TestFormatFee(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"₹50,000-₹1,00,000", "50000-100000"},
		{"75000", "75000"},
		{"Contact for fees", "-"},
		{"", "-"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := formatFee(tt.raw); got != tt.want {
				t.Errorf("formatFee(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMultiFlag(t *testing.T) {
	var streams multiFlag
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&streams, "stream", "")
	if err := fs.Parse([]string{"-stream", "Business", "-stream", "Finance"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := streams.String(); got != "Business,Finance" {
		t.Errorf("streams = %q, want %q", got, "Business,Finance")
	}
}

func TestPrintRecords(t *testing.T) {
	var buf bytes.Buffer
	printRecords(&buf, []college.Record{
		{ID: 1, Name: "Alpha", Location: "Pune", FeeRangeRaw: "50000-90000", Tags: []string{"CS", "BSc"}},
	})
	out := buf.String()
	for _, want := range []string{"NAME", "Alpha", "50000-90000", "CS, BSc"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintBrackets(t *testing.T) {
	var buf bytes.Buffer
	printBrackets(&buf, []college.BudgetBracket{
		{Label: "Low", Min: 0, Max: 100},
		{Label: "High", Min: 100, Unbounded: true},
	})
	out := buf.String()
	if !strings.Contains(out, "0 - 100") || !strings.Contains(out, "100 and above") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSearchExitStatus(t *testing.T) {
	t.Chdir(t.TempDir())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/settings/brackets", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"brackets":[{"label":"Under 1 Lakh","min":0,"max":100000}]}`)
	})
	mux.HandleFunc("GET /api/v1/college", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"college_name":"Alpha","address":"Pune","price_range":"50000-90000"}]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"bad flag", []string{"-nope"}, 2, "", "flag provided but not defined"},
		{"brackets", []string{"-server", srv.URL, "-brackets"}, 0, "Under 1 Lakh", ""},
		{"unknown budget", []string{"-server", srv.URL, "-budget", "Cheap"}, 1, "", `unknown budget "Cheap"`},
		{"match", []string{"-server", srv.URL, "-budget", "Under 1 Lakh"}, 0, "1 of 1 colleges match", ""},
		{"unreachable", []string{"-server", "http://127.0.0.1:1", "-timeout", "2s"}, 1, "", "search: fetch catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := search(tt.args, &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("exit = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}
