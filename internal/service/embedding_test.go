package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdelelgendy/mealmind/backend/internal/service"
)

func TestGenerateEmbedding(t *testing.T) {
	v := service.GenerateEmbedding("Pasta")
	assert.Equal(t, []float32{5, 2, 3}, v.Slice())

	// Deterministic and case-insensitive.
	assert.Equal(t, service.GenerateEmbedding("PASTA"), service.GenerateEmbedding("pasta"))

	// Non-letters count toward length only.
	v = service.GenerateEmbedding("a b!")
	assert.Equal(t, []float32{4, 1, 1}, v.Slice())
}
