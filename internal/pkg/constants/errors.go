package constants

import (
	"fmt"
	"net/http"
)

// CodedError is an error carrying the HTTP status it should surface with.
// The api error handler unwraps to it.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func NewCodedErrorf(code int, format string, args ...interface{}) *CodedError {
	return &CodedError{code: code, msg: fmt.Sprintf(format, args...)}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrBadRequest      = NewCodedError(http.StatusBadRequest, "bad request")
	ErrDatasetNotFound = NewCodedError(http.StatusNotFound, "dataset not found")

	// ErrNoMapData signals an empty geo join: every joined region came back
	// without a quantity. The map section reports it instead of rendering
	// an empty chart.
	ErrNoMapData = NewCodedError(http.StatusUnprocessableEntity, "no purchase data matched the geo layer")

	// ErrNoGeoLayers signals that neither a states polygon layer nor a
	// capitals point layer is configured, so there is nothing to map.
	ErrNoGeoLayers = NewCodedError(http.StatusNotFound, "no geo reference layers configured")
)

// NewMissingColumnError reports a required column absent from a flat table.
// Fatal for the whole pass.
func NewMissingColumnError(source, column string) *CodedError {
	return NewCodedErrorf(http.StatusUnprocessableEntity, "dataset %s: required column %q not found", source, column)
}

// NewMissingGeoCodeError reports a point layer without a state code column.
// Fatal for the map section only.
func NewMissingGeoCodeError(source string) *CodedError {
	return NewCodedErrorf(http.StatusUnprocessableEntity, "geo layer %s: no property named \"state\"", source)
}

// NewCRSMismatchError reports two layers that cannot be overlaid without
// reprojection, which is unsupported.
func NewCRSMismatchError(a, b string) *CodedError {
	return NewCodedErrorf(http.StatusUnprocessableEntity, "cannot overlay layers: reprojection from %s to %s is not supported", a, b)
}
