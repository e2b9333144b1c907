package server

import (
	"encoding/json"
	"log"
	"net/http"
)

// Answerer answers one question; the answer use case satisfies this.
type Answerer interface {
	Answer(query string) (string, error)
}

type qaRequest struct {
	Question string `json:"question"`
}

type qaResponse struct {
	Answer string `json:"answer,omitempty"`
	Error  string `json:"error,omitempty"`
}

// New returns the HTTP handler exposing POST /qa.
func New(answerer Answerer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/qa", func(w http.ResponseWriter, r *http.Request) {
		allowCORS(w)
		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPost:
			handleQA(answerer, w, r)
		default:
			writeJSON(w, http.StatusMethodNotAllowed, qaResponse{Error: "method not allowed"})
		}
	})
	return mux
}

func handleQA(answerer Answerer, w http.ResponseWriter, r *http.Request) {
	var req qaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, qaResponse{Error: "invalid request body"})
		return
	}
	if req.Question == "" {
		writeJSON(w, http.StatusBadRequest, qaResponse{Error: "问题不能为空"})
		return
	}

	answer, err := answerer.Answer(req.Question)
	if err != nil {
		log.Printf("error: answering failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, qaResponse{Error: "服务器内部错误"})
		return
	}
	writeJSON(w, http.StatusOK, qaResponse{Answer: answer})
}

func allowCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, body qaResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
