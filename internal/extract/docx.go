package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	tabMark      = regexp.MustCompile(`<w:tab[^>]*/>`)
	lineBreak    = regexp.MustCompile(`<w:br[^>]*/>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

var xmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// extractDOCX pulls the document body out of the DOCX zip archive and strips
// the WordprocessingML markup, keeping paragraph and tab structure.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx archive: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("reading document.xml: %w", err)
		}

		text := string(content)
		text = paragraphEnd.ReplaceAllString(text, "\n")
		text = tabMark.ReplaceAllString(text, "\t")
		text = lineBreak.ReplaceAllString(text, "\n")
		text = xmlTag.ReplaceAllString(text, "")
		return xmlEntities.Replace(text), nil
	}

	return "", errors.New("word/document.xml not found in archive")
}
