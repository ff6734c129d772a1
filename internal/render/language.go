package render

import (
	"path/filepath"
	"strings"
)

// DefaultLanguage tags files with an unknown extension.
const DefaultLanguage = "plaintext"

var languageByExt = map[string]string{
	".ps1": "powershell", ".txt": "plaintext", ".py": "python", ".json": "json",
	".js": "javascript", ".ts": "typescript", ".mjs": "javascript", ".cjs": "javascript",
	".html": "html", ".css": "css", ".scss": "scss", ".less": "less",
	".xml": "xml", ".yml": "yaml", ".yaml": "yaml", ".md": "markdown",
	".markdown": "markdown", ".mdx": "mdx", ".sh": "shell", ".bash": "shell",
	".zsh": "shell", ".bat": "batch", ".cmd": "batch", ".c": "c",
	".cpp": "cpp", ".h": "cpp", ".hpp": "cpp", ".cs": "csharp",
	".java": "java", ".kt": "kotlin", ".kts": "kotlin", ".go": "go",
	".rs": "rust", ".swift": "swift", ".rb": "ruby", ".php": "php",
	".r": "r", ".jl": "julia", ".pl": "perl", ".pm": "perl",
	".lua": "lua", ".sql": "sql", ".ini": "ini", ".toml": "toml",
	".cfg": "ini", ".conf": "ini", ".dockerfile": "dockerfile", ".makefile": "makefile",
	".mk": "makefile", ".cmake": "cmake", ".asm": "asm", ".s": "asm",
	".v": "verilog", ".sv": "systemverilog", ".vhdl": "vhdl", ".hdl": "vhdl",
	".tex": "latex", ".bib": "bibtex", ".rmd": "rmarkdown", ".ipynb": "json",
}

// Extensionless files that are common enough to recognise by name.
var languageByName = map[string]string{
	"dockerfile":     "dockerfile",
	"makefile":       "makefile",
	"gnumakefile":    "makefile",
	"cmakelists.txt": "cmake",
}

// Language returns the fence tag for path.
func Language(path string) string {
	if lang, ok := languageByName[strings.ToLower(filepath.Base(path))]; ok {
		return lang
	}
	if lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return DefaultLanguage
}
