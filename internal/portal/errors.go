package portal

import "errors"

// Sentinel errors for the portal. Callers match with errors.Is; every
// one of these is fatal for a sync run because it means no trustworthy
// schedule data was obtained.
var (
	// ErrCSRFNotFound means the login page markup did not contain the
	// hidden CSRF input. No login POST is attempted in that case.
	ErrCSRFNotFound = errors.New("csrf token not found in login page")
	// ErrLoginRejected means the credential POST returned anything other
	// than HTTP 200.
	ErrLoginRejected = errors.New("portal login rejected")
	// ErrHTTPStatus means a portal endpoint returned a non-200 status.
	ErrHTTPStatus = errors.New("unexpected portal response status")
	// ErrJSONDecode means a portal endpoint returned a body that could
	// not be decoded as the expected JSON.
	ErrJSONDecode = errors.New("portal response is not valid json")
)
