package processors

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLCleaner strips navigation, scripts and layout chrome from
// HTML-exported CVs so the extraction provider only sees CV text
type HTMLCleaner struct {
	removeTags []string
}

// NewHTMLCleaner creates a new HTML cleaner instance
func NewHTMLCleaner() *HTMLCleaner {
	return &HTMLCleaner{
		removeTags: []string{
			"script", "style", "noscript", "iframe", "object", "embed",
			"form", "input", "button", "select", "textarea",
			"nav", "header", "footer", "aside", "menu",
			"svg", "path", "g", "defs", "use", "symbol",
			"meta", "link", "base",
		},
	}
}

// ExtractCVText extracts the plain text of an HTML CV document
func (hc *HTMLCleaner) ExtractCVText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	for _, tag := range hc.removeTags {
		doc.Find(tag).Remove()
	}

	// Content-bearing containers first; many CV exports wrap everything in a
	// main or article element
	var contentParts []string
	doc.Find("main, article, section, p, li, h1, h2, h3, h4, h5, h6, td").Each(func(i int, s *goquery.Selection) {
		// Skip nested containers whose text is covered by a parent block
		if s.Is("main, article, section") && s.Find("p, li, h1, h2, h3").Length() > 0 {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			contentParts = append(contentParts, text)
		}
	})

	if len(contentParts) == 0 {
		if bodyText := strings.TrimSpace(doc.Find("body").Text()); bodyText != "" {
			contentParts = append(contentParts, bodyText)
		}
	}

	return collapseWhitespace(strings.Join(contentParts, "\n")), nil
}

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
)

func collapseWhitespace(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
