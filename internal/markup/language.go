package markup

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// DetectLanguageFromExt returns the language name and tree-sitter Language
// for a given file extension. Returns ok=false for extensions that cannot
// contain JSX.
func DetectLanguageFromExt(ext string) (langName string, lang *sitter.Language, ok bool) {
	switch strings.ToLower(ext) {
	case ".tsx":
		return "tsx", tsx.GetLanguage(), true
	case ".jsx", ".js", ".mjs", ".cjs":
		return "javascript", javascript.GetLanguage(), true
	default:
		return "", nil, false
	}
}

// Supported reports whether path has an extension Parse understands.
func Supported(path string) bool {
	_, _, ok := DetectLanguageFromExt(filepath.Ext(path))
	return ok
}
