// Package extract locates a property's mailing address inside a fetched
// cadastral page using an ordered chain of extraction strategies.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is the parsed content of one property-details page.
type Page struct {
	Geocode string
	URL     string
	HTML    string
	Text    string // full body text, whitespace-collapsed
	Doc     *goquery.Document
}

// NewPage parses raw HTML into a Page ready for extraction.
func NewPage(geocode, url, rawHTML string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &Page{
		Geocode: geocode,
		URL:     url,
		HTML:    rawHTML,
		Text:    CleanText(doc.Find("body").Text()),
		Doc:     doc,
	}, nil
}
