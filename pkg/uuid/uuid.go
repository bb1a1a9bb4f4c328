// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid generates the time-ordered UUIDv7 primary keys used by every
// table that does not use a serial id.
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// entropy failure is unrecoverable
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}
