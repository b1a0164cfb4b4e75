// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package errors holds the sentinel errors shared by fgfleet packages.
// Wrap them with fmt.Errorf("...: %w", err) and test with errors.Is.
package errors

import "errors"

// ErrFileNotFound is returned when a file is not found.
var ErrFileNotFound = errors.New("file not found")

// ErrIncorrectInput is returned when the user input is incorrect.
var ErrIncorrectInput = errors.New("incorrect input")

var (
	// ErrConfiguration is returned for a malformed or incomplete device descriptor.
	ErrConfiguration = errors.New("configuration error")
	// ErrConnection is returned when a transport could not be established.
	ErrConnection = errors.New("connection error")
	// ErrAuthentication is returned when a transport is up but credentials are rejected.
	ErrAuthentication = errors.New("authentication error")
	// ErrPolicy is returned when an operation is not allowed under the current auth mode.
	ErrPolicy = errors.New("policy error")
	// ErrValidation is returned when a received payload or an input fails a shape check.
	ErrValidation = errors.New("validation error")
	// ErrParse is returned when an expected marker is missing from shell output.
	ErrParse = errors.New("parse error")
	// ErrRemoteOperation is returned when the device reports a non-success status.
	ErrRemoteOperation = errors.New("remote operation error")
)
