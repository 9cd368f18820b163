package app

import "errors"

// Failures that are recovered locally. They are logged and reported, but
// never stop content from being shown.
var (
	ErrPreferenceRead  = errors.New("preference read failed")
	ErrUpdateQuery     = errors.New("update availability query failed")
	ErrUpdateFlowStart = errors.New("update flow start failed")
)
