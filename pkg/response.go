package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
	HTML string
}{
	JSON: "application/json",
	Text: "text/plain; charset=utf-8",
	HTML: "text/html; charset=utf-8",
}

func WriteResponse(w http.ResponseWriter, contentType, message string, statusCode int) {
	WriteResponseBytes(w, contentType, []byte(message), statusCode)
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%s]: %s", message, err)
	}
}

// WriteJSONResponse marshals v and writes it with the given status.
// Marshalling failures end up as a plain 500.
func WriteJSONResponse(w http.ResponseWriter, v any, statusCode int) {
	respBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal json response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respBytes, statusCode)
}

// WriteJSONError writes {"error": message}, the error shape clients of this API expect.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSONResponse(w, map[string]string{"error": message}, statusCode)
}
