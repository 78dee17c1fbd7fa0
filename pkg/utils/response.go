package utils

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
)

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Success writes {success: true, message?, data?}
func Success(w http.ResponseWriter, status int, message string, data interface{}) {
	body := map[string]interface{}{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	JSON(w, status, body)
}

// Error writes the failure envelope; the stack is only attached when withStack is set
func Error(w http.ResponseWriter, status int, message string, err error, withStack bool) {
	resp := ErrorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	if withStack {
		resp.Stack = string(debug.Stack())
	}
	JSON(w, status, resp)
}
