package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lawchemical/Draft-Order-App/internal/domain"
)

const (
	TypeValidation        = "/problems/validation-error"
	TypeBadRequest        = "/problems/bad-request"
	TypeUnsupportedMedia  = "/problems/unsupported-media-type"
	TypeInProgress        = "/problems/in-progress"
	TypeMissingReference  = "/problems/missing-reference"
	TypeUpstreamRejected  = "/problems/upstream-rejected"
	TypeUpstreamTransient = "/problems/upstream-unavailable"
	TypeIncompleteResult  = "/problems/incomplete-result"
	TypeTimeout           = "/problems/timeout"
	TypeUnhealthy         = "/problems/unhealthy"
	TypeInternal          = "/problems/internal-error"
)

// Problem is an RFC 7807 problem details body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// problemFor maps a pipeline error to its response. Unknown errors become
// a 500 without leaking their text.
func problemFor(err error) Problem {
	var (
		ve *domain.ValidationError
		me *domain.MissingReferenceError
		ue *domain.UpstreamError
	)
	switch {
	case errors.As(err, &ve):
		return Problem{Type: TypeValidation, Title: "Validation Error", Status: http.StatusBadRequest, Detail: ve.Msg}
	case errors.Is(err, domain.ErrInProgress):
		return Problem{Type: TypeInProgress, Title: "Request In Progress", Status: http.StatusConflict, Detail: err.Error()}
	case errors.As(err, &me):
		return Problem{Type: TypeMissingReference, Title: "Reference Not Found", Status: http.StatusUnprocessableEntity, Detail: me.Error()}
	case errors.Is(err, domain.ErrIncompleteResult):
		return Problem{Type: TypeIncompleteResult, Title: "Incomplete Upstream Result", Status: http.StatusBadGateway, Detail: err.Error()}
	case errors.As(err, &ue) && ue.Transient:
		return Problem{Type: TypeUpstreamTransient, Title: "Upstream Unavailable", Status: http.StatusServiceUnavailable, Detail: ue.Error()}
	case errors.As(err, &ue):
		return Problem{Type: TypeUpstreamRejected, Title: "Upstream Rejected Request", Status: http.StatusBadGateway, Detail: ue.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return Problem{Type: TypeTimeout, Title: "Timeout", Status: http.StatusGatewayTimeout, Detail: "request timed out"}
	default:
		return Problem{Type: TypeInternal, Title: "Internal Server Error", Status: http.StatusInternalServerError, Detail: "internal error"}
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, p Problem) {
	p.Instance = r.URL.Path
	if p.Status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}
