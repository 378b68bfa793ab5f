package formsapi

import (
	"errors"
	"fmt"
)

// Envelope is the result shape returned by every pipeline-facing
// operation: status plus operation-specific fields on success, or
// error_message/error_code/error_type on failure. Errors cross the
// pipeline boundary as data, never as panics.
type Envelope map[string]any

// Success builds a success envelope with the given fields.
func Success(fields map[string]any) Envelope {
	env := Envelope{"status": "success"}
	for k, v := range fields {
		env[k] = v
	}
	return env
}

// Failure builds an error envelope from err. Remote errors contribute
// their HTTP status as error_code; error_type carries the concrete
// error type name.
func Failure(err error) Envelope {
	env := Envelope{
		"status":        "error",
		"error_message": err.Error(),
		"error_type":    fmt.Sprintf("%T", unwrapAll(err)),
	}
	var remoteErr *RemoteAPIError
	if errors.As(err, &remoteErr) {
		env["error_code"] = remoteErr.StatusCode
	}
	return env
}

// unwrapAll walks to the innermost typed error so error_type names the
// root cause rather than a wrapper.
func unwrapAll(err error) error {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err
		}
		err = inner
	}
}
