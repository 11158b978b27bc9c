package handling

import (
	"encoding/json"
	"net/http"

	"github.com/MonkyMars/gecho"
)

type messageBody struct {
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, status int, message string) error {
	switch status {
	case http.StatusBadRequest:
		return gecho.BadRequest(w, gecho.WithMessage(message)).Send()
	case http.StatusUnauthorized:
		return gecho.Unauthorized(w, gecho.WithMessage(message)).Send()
	case http.StatusForbidden:
		return gecho.Forbidden(w, gecho.WithMessage(message)).Send()
	case http.StatusNotFound:
		return gecho.NotFound(w, gecho.WithMessage(message)).Send()
	case http.StatusConflict:
		return gecho.Conflict(w, gecho.WithMessage(message)).Send()
	case http.StatusTooManyRequests:
		return gecho.TooManyRequests(w, gecho.WithMessage(message)).Send()
	case http.StatusInternalServerError:
		return gecho.InternalServerError(w, gecho.WithMessage(message)).Send()
	case http.StatusServiceUnavailable:
		return gecho.ServiceUnavailable(w, gecho.WithMessage(message)).Send()
	default:
		return writeJSON(w, status, messageBody{Message: message})
	}
}

// writeJSON writes body as-is, without gecho's envelope, for endpoints whose
// payload shape is part of their contract.
func writeJSON(w http.ResponseWriter, status int, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(payload)
	return err
}
