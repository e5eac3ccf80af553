package parsing

import (
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// Resume file formats the text extractor handles.
var supportedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".doc":  {},
	".rtf":  {},
	".odt":  {},
	".txt":  {},
}

// IsSupportedResumeFile reports whether the path has an extension the
// extractor can read.
func IsSupportedResumeFile(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ExtractText reads the plain-text content of a resume file. Binary document
// formats go through docconv; plain text is read directly.
func ExtractText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", &ExtractionError{Path: path, Message: "document conversion failed", Cause: err}
		}
		return strings.TrimSpace(res.Body), nil
	case ".txt":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", &ExtractionError{Path: path, Message: "read failed", Cause: err}
		}
		return strings.TrimSpace(string(content)), nil
	default:
		return "", &ExtractionError{Path: path, Message: "unsupported file type " + ext}
	}
}
