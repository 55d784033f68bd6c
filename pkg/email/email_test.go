package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapFoldsLongLines(t *testing.T) {
	text := strings.Repeat("word ", 40) // 200 karakter

	wrapped := Wrap(text, WrapWidth)

	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), WrapWidth)
	}
	// Katlama içerik kaybetmez
	assert.Equal(t, 40, strings.Count(wrapped, "word"))
}

func TestWrapPreservesExistingNewlines(t *testing.T) {
	text := "Hello alice,\n\nA new comment was published.\n\n--\nfooter"

	wrapped := Wrap(text, WrapWidth)

	// Kısa satırlar olduğu gibi kalır, boş satırlar korunur
	assert.Equal(t, text, wrapped)
}

func TestWrapDoesNotSplitLongWords(t *testing.T) {
	url := "https://example.test/" + strings.Repeat("x", 100)
	text := "Read here: " + url

	wrapped := Wrap(text, WrapWidth)

	// URL ortadan kırılmaz — kendi satırında bütün kalır
	assert.Contains(t, wrapped, url)

	lines := strings.Split(wrapped, "\n")
	assert.Equal(t, []string{"Read here:", url}, lines)
}

func TestWrapShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "hello world", Wrap("hello world", WrapWidth))
	assert.Equal(t, "", Wrap("", WrapWidth))
}
