// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"application", "application"},
		{"Application", "application"},
		{"patient_register", "patientRegister"},
		{"app-config", "appConfig"},
		{"Sync Config", "syncConfig"},
		{"household_profile_v2", "householdProfileV2"},
		{"measureReport", "measureReport"},
		{"__leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CamelCase(tt.in))
		})
	}
}

func TestChunk_Bounds(t *testing.T) {
	for _, n := range []int{0, 1, 19, 20, 21, 40, 41, 99} {
		ids := make([]int, n)
		for i := range ids {
			ids[i] = i
		}

		chunks := Chunk(ids, 20)

		assert.Len(t, chunks, (n+19)/20, "n=%d", n)
		next := 0
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 20)
			for _, v := range c {
				assert.Equal(t, next, v, "order must be preserved")
				next++
			}
		}
		assert.Equal(t, n, next)
	}
}

func TestChunk_NonPositiveSize(t *testing.T) {
	assert.Equal(t, [][]string{{"a", "b"}}, Chunk([]string{"a", "b"}, 0))
}

func TestChunk_AppendDoesNotClobberNextChunk(t *testing.T) {
	chunks := Chunk([]int{1, 2, 3, 4}, 2)
	_ = append(chunks[0], 99)
	assert.Equal(t, []int{3, 4}, chunks[1])
}
