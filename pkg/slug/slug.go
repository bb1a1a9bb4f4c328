// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug builds and checks the URL keys comics and genres are addressed
// by, e.g. "Pedang Terakhir" → "pedang-terakhir".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds generated slugs; longer titles are truncated.
const MaxLength = 120

/*
From lowercases the input, folds accents and joins every run of ASCII letters
and digits with a single hyphen. Anything else is a separator, so the result
never starts or ends with a hyphen and may be empty.
*/
func From(input string) string {
	// A chain carries buffers, so each call gets its own.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, input)
	if err != nil {
		folded = input
	}

	var builder strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		if !isSlugRune(r) {
			pendingHyphen = builder.Len() > 0
			continue
		}
		if pendingHyphen {
			if builder.Len()+1 >= MaxLength {
				break
			}
			builder.WriteByte('-')
			pendingHyphen = false
		}
		if builder.Len() >= MaxLength {
			break
		}
		builder.WriteRune(r)
	}

	return strings.TrimRight(builder.String(), "-")
}

// Valid reports whether value is already in slug form.
func Valid(value string) bool {
	if value == "" || len(value) > MaxLength {
		return false
	}
	if strings.HasPrefix(value, "-") || strings.HasSuffix(value, "-") || strings.Contains(value, "--") {
		return false
	}
	for _, r := range value {
		if r != '-' && !isSlugRune(r) {
			return false
		}
	}
	return true
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
