package client

import "errors"

var (
	ErrUsage       = errors.New("usage")
	errNoAPIClient = errors.New("no api client provided")
)
