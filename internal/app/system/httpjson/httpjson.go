// internal/app/system/httpjson/httpjson.go

// Package httpjson writes the API's JSON response shapes.
//
// Every endpoint speaks JSON; errors always use the body
// {"error": "<human-readable message>"} with the HTTP status carrying the
// error taxonomy (400 validation/conflict, 401 unauthenticated, 403
// forbidden, 404 not found, 500 storage).
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Write serializes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the standard error body.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// Message writes a 200 with a {"message": ...} body, used by delete/leave
// style endpoints that have nothing else to return.
func Message(w http.ResponseWriter, msg string) {
	Write(w, http.StatusOK, map[string]string{"message": msg})
}
