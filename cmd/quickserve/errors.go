package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrUsage    = errors.New("invalid usage")
	ErrEnvValue = errors.New("invalid environment variable")
)
