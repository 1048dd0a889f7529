package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePublicURL(t *testing.T) {
	bucket, path, ok := ParsePublicURL(
		"https://abc.supabase.co/storage/v1/object/public/photos/students/20260831-x-foto.webp")
	assert.True(t, ok)
	assert.Equal(t, "photos", bucket)
	assert.Equal(t, "students/20260831-x-foto.webp", path)

	// caminho escapado volta decodificado
	bucket, path, ok = ParsePublicURL(
		"https://abc.supabase.co/storage/v1/object/public/photos/students/foto%20nova.webp")
	assert.True(t, ok)
	assert.Equal(t, "photos", bucket)
	assert.Equal(t, "students/foto nova.webp", path)

	// URLs fora do padrão não viram delete
	_, _, ok = ParsePublicURL("")
	assert.False(t, ok)
	_, _, ok = ParsePublicURL("https://cdn.exemplo.com/fotos/x.webp")
	assert.False(t, ok)
	_, _, ok = ParsePublicURL("https://abc.supabase.co/storage/v1/object/public/photos")
	assert.False(t, ok)
}
