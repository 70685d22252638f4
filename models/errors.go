package models

import "errors"

var (
	// ErrNotFound is returned when the analysis API answers 404
	ErrNotFound = errors.New("no data available")
	// ErrUpstream covers every other failed request
	ErrUpstream = errors.New("analysis api request failed")
	// ErrEmptyDataset marks a successful response that carries no signal
	ErrEmptyDataset = errors.New("dataset has no signal")
	// ErrDecode is returned when a response body does not match the expected shape
	ErrDecode = errors.New("unexpected response shape")

	ErrInvalidGender = errors.New("invalid gender")
	ErrUnknownView   = errors.New("unknown view")
)
