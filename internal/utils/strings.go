// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CamelCase converts a delimited key ("patient_register", "app-config",
// "Sync Config") to camelCase ("patientRegister", "appConfig",
// "syncConfig"). Inner capitals of a word are preserved, so an already
// camelCased key is returned unchanged.
func CamelCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return ""
	}

	// casers are stateful and must not be shared between goroutines
	titleCaser := cases.Title(language.Und, cases.NoLower)
	lowerCaser := cases.Lower(language.Und)

	var b strings.Builder
	first, size := utf8.DecodeRuneInString(words[0])
	b.WriteString(lowerCaser.String(string(first)))
	b.WriteString(words[0][size:])

	for _, w := range words[1:] {
		b.WriteString(titleCaser.String(w))
	}

	return b.String()
}

// Chunk splits items into consecutive slices of at most size elements,
// preserving order. A non-positive size yields a single chunk.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size >= len(items) {
		return [][]T{items}
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}
