package shared

import (
	"encoding/json"
	"net/http"
)

// ServerError is the only payload ever returned for unexpected failures,
// internal detail stays in the server logs.
var ServerError = NewMessage("An error occurred, please try again later")

// Message is the uniform error/notice body of the API.
type Message struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func NewMessage(message string) Message {
	return Message{
		Message: message,
	}
}

func HttpError(w http.ResponseWriter, message Message, code int) {
	WriteJSON(w, message, code)
}

func WriteJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	switch v := data.(type) {
	case []byte:
		w.Write(v)
	case string:
		w.Write([]byte(v))
	default:
		json.NewEncoder(w).Encode(data)
	}
}
