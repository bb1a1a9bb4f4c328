// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter manages chapters and their ordered page images.

Chapters are ordered by an integer chapter_number that is unique within a
comic. Pages are ordered by page_number within a chapter and point at an
image in object storage.
*/
package chapter

import "time"

// Field names used in validation errors.
const (
	FieldChapterNumber = "chapter_number"
	FieldTitle         = "title"
	FieldFiles         = "files"
)

// Chapter is one installment of a comic.
type Chapter struct {
	ID            string    `json:"id"`
	ComicID       string    `json:"comic_id"`
	ChapterNumber int       `json:"chapter_number"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Page is a single image of a chapter.
type Page struct {
	ID         string    `json:"id"`
	ChapterID  string    `json:"chapter_id"`
	PageNumber int       `json:"page_number"`
	ImageURL   string    `json:"image_url"`
	ObjectKey  string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
