package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/session"
)

const maxBodyBytes = 1 << 16

// statusFor maps a session result onto an HTTP status.
func statusFor(res session.Result) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Code {
	case session.CodeGameNotFound, session.CodePlayerNotFound:
		return http.StatusNotFound
	case session.CodeNotYourTurn, session.CodeMustPlay, session.CodeGameOver, session.CodeDeckExhausted:
		return http.StatusConflict
	case session.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// pathGameID parses {gameId}, writing a 400 when it is not a UUID.
func pathGameID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("gameId"))
	if err != nil {
		writeFailure(w, session.CodeInvalidRequest, "Invalid game id")
		return uuid.Nil, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, code session.Code, msg string) {
	res := session.Result{Success: false, Message: msg, Code: code}
	writeJSON(w, statusFor(res), res)
}
