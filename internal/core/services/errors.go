// Package services hosts the codec pipeline stages. Errors shared by the
// session types live here so every stage reports lifecycle misuse the same
// way.
package services

import "errors"

var (
	// ErrSessionClosed is returned when a session is used after Close.
	ErrSessionClosed = errors.New("session already closed")

	// ErrSessionFinished is returned when more input is fed after Finish
	// terminated the stream.
	ErrSessionFinished = errors.New("session already finished")

	// ErrAlreadyParsed is returned when a one-shot parse is requested twice
	// on the same run.
	ErrAlreadyParsed = errors.New("stream already parsed")
)
