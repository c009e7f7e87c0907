// Package respond writes the JSON response shapes the frontend expects.
// Error payloads are {"erro": "..."} and success messages {"mensagem": "..."},
// matching the wire vocabulary of the rest of the system.
package respond

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Erro writes {"erro": msg} with the given status code.
func Erro(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"erro": msg})
}

// Mensagem writes {"mensagem": msg} with the given status code.
func Mensagem(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"mensagem": msg})
}
