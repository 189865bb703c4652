package pystub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPysafeKeywordsGetSuffix(t *testing.T) {
	for _, word := range []string{"pass", "import", "yield", "None", "exec", "print"} {
		got, ok := pysafe(word)
		assert.True(t, ok)
		assert.Equal(t, word+"_", got)
	}
}

func TestPysafePlainIdentifiersUnchanged(t *testing.T) {
	for _, word := range []string{"toString", "value", "_internal", "passValue", "x"} {
		got, ok := pysafe(word)
		assert.True(t, ok)
		assert.Equal(t, word, got)
	}
}

func TestPysafeDropsDunderNames(t *testing.T) {
	for _, word := range []string{"__init__", "____", "__getattr__"} {
		_, ok := pysafe(word)
		assert.False(t, ok, word)
	}
	// too short to be dunder-shaped
	got, ok := pysafe("___")
	assert.True(t, ok)
	assert.Equal(t, "___", got)
}

func TestPysafePackagePath(t *testing.T) {
	assert.Equal(t, "com.pass_.example", pysafePackagePath("com.pass.example"))
	assert.Equal(t, "java.util", pysafePackagePath("java.util"))
}
