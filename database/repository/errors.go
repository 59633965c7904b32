// Package repository defines sentinel errors shared by the Mongo-backed
// repositories so services can branch on storage outcomes without matching
// on error strings.
package repository

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDateConflict is returned by the transactional booking-create guard
	// when a consuming booking already overlaps the requested range.
	ErrDateConflict = errors.New("date range already booked")

	// ErrStaleStatus is returned by the compare-and-set status update when
	// the booking's status no longer matches the expected current status.
	ErrStaleStatus = errors.New("booking status changed concurrently")
)
