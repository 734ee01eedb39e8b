package utils

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

var languageByExtension = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".jsx":   "jsx",
	".ts":    "typescript",
	".tsx":   "tsx",
	".java":  "java",
	".cpp":   "cpp",
	".c":     "c",
	".h":     "c",
	".cs":    "csharp",
	".go":    "go",
	".rs":    "rust",
	".rb":    "ruby",
	".php":   "php",
	".vue":   "vue",
	".swift": "swift",
	".kt":    "kotlin",
	".md":    "markdown",
}

// DetectLanguage maps a file path to a chroma lexer name, falling back to
// plain text.
func DetectLanguage(path string) string {
	if language, ok := languageByExtension[strings.ToLower(filepath.Ext(path))]; ok {
		return language
	}
	return "text"
}

// HighlightContent renders source text with syntax highlighting for the
// terminal using the configured theme.
func HighlightContent(w io.Writer, content, language, theme string) error {
	return quick.Highlight(w, content, language, "terminal256", theme)
}

// HeadLines returns at most n leading lines of content.
func HeadLines(content string, n int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= n {
		return content
	}
	return strings.Join(lines[:n], "\n")
}
