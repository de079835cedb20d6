package errors

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ErrorDump flattens an error chain for structured logging. Upstream
// collaborator failures (Sheets, Stripe) keep their response body so a
// transport error can be diagnosed without re-running the request.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamBody   string `json:"upstream_body,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		d.UpstreamStatus = apiErr.Code
		d.UpstreamBody = apiErr.Body
	}

	return d
}
