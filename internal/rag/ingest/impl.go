package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

type docType int

const (
	typePDF docType = iota
	typeDocxTxtRtf
	typeUnsupported
)

type rawPage struct {
	Number  int
	Content string
}

func getDocType(docPath string) docType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return typePDF
	case ".docx", ".txt", ".rtf":
		return typeDocxTxtRtf
	default:
		return typeUnsupported
	}
}

func extractText(path string, contentType docType) ([]string, error) {
	var pages []rawPage
	var err error

	switch contentType {
	case typePDF:
		pages, err = extractPDF(path)
	case typeDocxTxtRtf:
		pages, err = extractdocxTxtRtf(path)
	default:
		return nil, fmt.Errorf("unsupported content type for %s", filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}

	// page slots are positional: page N lives at index N-1 so chunk page
	// numbers survive even when the extractor skipped unreadable pages
	maxPage := 0
	for _, p := range pages {
		if p.Number > maxPage {
			maxPage = p.Number
		}
	}
	out := make([]string, maxPage)
	for _, p := range pages {
		out[p.Number-1] = p.Content
	}
	return out, nil
}

// SanitizeFilename lowercases the name, slugs everything outside
// [a-z0-9._-] to '-' and keeps a recognized extension. Names without a
// usable extension are treated as pdf since that is the dominant upload.
func SanitizeFilename(name string) string {
	base := strings.ToLower(filepath.Base(name))
	ext := filepath.Ext(base)
	switch ext {
	case ".pdf", ".docx", ".txt", ".rtf":
		base = strings.TrimSuffix(base, ext)
	default:
		ext = ".pdf"
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-.")
	if slug == "" {
		slug = "document"
	}
	return slug + ext
}
