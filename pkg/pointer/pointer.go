// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer builds pointers to literals for optional JSON fields.
package pointer

// To returns a pointer to a copy of v, e.g. pointer.To(chapter.ChapterNumber).
func To[T any](v T) *T {
	return &v
}
