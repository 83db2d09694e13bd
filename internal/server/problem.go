package server

import (
	"encoding/json"
	"net/http"
)

// Problem types for RFC 7807 Problem Details responses.
const (
	ProblemTypeNotFound         = "https://collegefinder.app/problems/not-found"
	ProblemTypeBadRequest       = "https://collegefinder.app/problems/bad-request"
	ProblemTypeInternal         = "https://collegefinder.app/problems/internal-error"
	ProblemTypeUnauthorized     = "https://collegefinder.app/problems/unauthorized"
	ProblemTypeForbidden        = "https://collegefinder.app/problems/forbidden"
	ProblemTypeRateLimited      = "https://collegefinder.app/problems/rate-limited"
	ProblemTypeConflict         = "https://collegefinder.app/problems/conflict"
	ProblemTypeCapacityExceeded = "https://collegefinder.app/problems/capacity-exceeded"
	ProblemTypeAlreadyPresent   = "https://collegefinder.app/problems/already-present"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// WriteProblem writes an RFC 7807 Problem Details JSON response.
func WriteProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, typ, title string, status int, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     typ,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	})
}

// NotFound writes a 404 problem response.
func NotFound(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeNotFound, "Not Found", http.StatusNotFound, detail, instance)
}

// BadRequest writes a 400 problem response.
func BadRequest(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeBadRequest, "Bad Request", http.StatusBadRequest, detail, instance)
}

// InternalError writes a 500 problem response.
func InternalError(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeInternal, "Internal Server Error", http.StatusInternalServerError, detail, instance)
}

// Unauthorized writes a 401 problem response with a Bearer challenge.
func Unauthorized(w http.ResponseWriter, detail, instance string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="collegefinder"`)
	writeStatus(w, ProblemTypeUnauthorized, "Unauthorized", http.StatusUnauthorized, detail, instance)
}

// Forbidden writes a 403 problem response.
func Forbidden(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeForbidden, "Forbidden", http.StatusForbidden, detail, instance)
}

// Conflict writes a 409 problem response.
func Conflict(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeConflict, "Conflict", http.StatusConflict, detail, instance)
}

// CapacityExceeded writes a 409 problem response whose type tells clients
// a bounded list is full.
func CapacityExceeded(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeCapacityExceeded, "Capacity Exceeded", http.StatusConflict, detail, instance)
}

// AlreadyPresent writes a 400 problem response for an insert into a list
// that already holds the item.
func AlreadyPresent(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeAlreadyPresent, "Bad Request", http.StatusBadRequest, detail, instance)
}

// RateLimited writes a 429 problem response.
func RateLimited(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeRateLimited, "Too Many Requests", http.StatusTooManyRequests, detail, instance)
}
