package gcal

import "errors"

// Sentinel errors for destination-calendar operations. List failures are
// fatal for a run (they happen before any mutation); create and delete
// failures on individual events are logged and counted, and the run
// continues.
var (
	ErrListFailed   = errors.New("listing calendar events failed")
	ErrCreateFailed = errors.New("creating calendar event failed")
	ErrDeleteFailed = errors.New("deleting calendar event failed")
	ErrUpdateFailed = errors.New("updating calendar event failed")
)
