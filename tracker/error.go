// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

// Err identifies an error with a constant string that supports comparison
// with errors.Is.
type Err string

// Error satisfies the error interface and prints human-readable errors.
func (e Err) Error() string { return string(e) }

var (
	// ErrSelfRequired is used to indicate that the Self identity cannot be
	// the zero value in the configuration.
	ErrSelfRequired = Err("ErrSelfRequired")

	// ErrTrackerStopped is returned for request/response calls made through
	// a handle after the tracker has been shut down.  Admission rejections
	// are reported through nil results, never through this error.
	ErrTrackerStopped = Err("ErrTrackerStopped")
)
