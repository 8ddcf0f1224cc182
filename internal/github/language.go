package github

import (
	"path"
	"strings"
)

var extensionLanguages = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".java":  "java",
	".kt":    "kotlin",
	".rb":    "ruby",
	".rs":    "rust",
	".php":   "php",
	".cs":    "csharp",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".hpp":   "cpp",
	".swift": "swift",
	".scala": "scala",
	".sh":    "bash",
	".sql":   "sql",
	".html":  "html",
	".css":   "css",
	".scss":  "scss",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".md":    "markdown",
	".vue":   "vue",
	".dart":  "dart",
	".lua":   "lua",
}

// LanguageFromPath guesses the language of a file from its extension. Unknown
// extensions yield "text".
func LanguageFromPath(p string) string {
	base := path.Base(p)
	if base == "Dockerfile" {
		return "dockerfile"
	}
	if lang, ok := extensionLanguages[strings.ToLower(path.Ext(base))]; ok {
		return lang
	}
	return "text"
}
