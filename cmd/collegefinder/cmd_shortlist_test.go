package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HerbHall/collegefinder/internal/server"
)

// fakeAPI serves just enough of the API for one student. Its compare list
// reads as empty, but it reports college 7 as already present and every
// other add as over capacity, as it would after edits from another device.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret1" {
			server.Unauthorized(w, "Invalid email or password", r.URL.Path)
			return
		}
		writeJSON(w, map[string]any{"token": "tok", "user_id": 3, "email": body["email"], "role": "student"})
	})
	mux.HandleFunc("GET /api/v1/college/liked/3", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"liked_colleges": []any{}})
	})
	mux.HandleFunc("GET /api/v1/college/compare/3", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"compared_colleges": []any{}})
	})
	mux.HandleFunc("POST /api/v1/college/compare/3/7", func(w http.ResponseWriter, r *http.Request) {
		server.AlreadyPresent(w, "College already in compare list", r.URL.Path)
	})
	mux.HandleFunc("POST /api/v1/college/compare/3/{id}", func(w http.ResponseWriter, r *http.Request) {
		server.CapacityExceeded(w, "You can only compare up to 2 colleges", r.URL.Path)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestShortlistExitStatus(t *testing.T) {
	t.Chdir(t.TempDir())
	srv := fakeAPI(t)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"missing email", []string{"list"}, 2, "", "Usage: collegefinder shortlist"},
		{"missing id", []string{"-email", "a@b.c", "like"}, 2, "", "Usage:"},
		{"invalid id", []string{"-email", "a@b.c", "like", "x"}, 2, "", `invalid college id "x"`},
		{"unknown action", []string{"-email", "a@b.c", "star", "1"}, 2, "", `unknown action "star"`},
		{"bad flag", []string{"-nope"}, 2, "", "flag provided but not defined"},
		{"help", []string{"-h"}, 0, "", "Usage:"},
		{"wrong password", []string{"-server", srv.URL, "-email", "a@b.c", "-password", "x", "list"}, 1, "", "login failed"},
		{"already compared", []string{"-server", srv.URL, "-email", "a@b.c", "-password", "secret1", "compare", "7"}, 0, "College 7 in compare list (1/2)", ""},
		{"server full", []string{"-server", srv.URL, "-email", "a@b.c", "-password", "secret1", "compare", "8"}, 1, "", "compare list is full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := shortlist(tt.args, &stdout, &stderr)
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
