package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractTextFromTxt(t *testing.T) {
	p := NewDocumentParser()
	path := writeFile(t, "resume.txt", "Jane Doe\n\n  5 years\tof   experience\n")

	text, err := p.ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe 5 years of experience", text)
}

func TestExtractTextEmptyTxtIsUnparseable(t *testing.T) {
	p := NewDocumentParser()
	path := writeFile(t, "empty.txt", "   \n\t\n")

	_, err := p.ExtractText(path)
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestExtractTextUnsupportedType(t *testing.T) {
	p := NewDocumentParser()
	path := writeFile(t, "resume.docx", "whatever")

	_, err := p.ExtractText(path)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractTextInvalidUTF8Tolerated(t *testing.T) {
	p := NewDocumentParser()
	path := filepath.Join(t.TempDir(), "latin.txt")
	require.NoError(t, os.WriteFile(path, []byte{'r', 0xE9, 's', 'u', 'm', 0xE9, ' ', 'o', 'k'}, 0644))

	text, err := p.ExtractText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "ok")
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\nb\t c  "))
	assert.Equal(t, "", CleanText(" \t\n"))
	// Control characters are stripped, not spaced.
	assert.Equal(t, "ab", CleanText("a\x00b"))
}
