package model

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// SearchEmbedding returns a simple deterministic embedding for recipe
// search ordering. It counts total length, vowels and consonants, which
// is cheap, stable and needs no external provider. The ingredient
// matcher uses real provider embeddings; this one only ranks recipes.
func SearchEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels, consonants float32
	for _, r := range text {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		} else if r >= 'a' && r <= 'z' {
			consonants++
		}
	}
	length := float32(len(text))
	return pgvector.NewVector([]float32{length, vowels, consonants})
}
