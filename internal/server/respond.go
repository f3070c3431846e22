package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/ontograph/pkg/errors"
)

// Messages for views with nothing to show.
const (
	msgNoRegistryData = "no registry data available"
	msgNoMatch        = "no nodes reachable from the requested root"
	msgNoDiagram      = "no relationships found in the diagram"
)

// availability is embedded in every view response.
type availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

func available(ok bool, emptyMessage string) availability {
	if ok {
		return availability{Available: true}
	}
	return availability{Message: emptyMessage}
}

type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorBody{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: r.Header.Get(RequestIDHeader),
	})
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}
