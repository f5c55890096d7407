// Package extract pulls visible paragraph text out of rendered HTML.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NonContent lists the elements dropped before paragraphs are read.
const NonContent = "script, style, nav, footer, header, meta, link"

// Paragraphs returns the text of every <p> element outside non-content
// elements. Text nodes are trimmed and joined by a single space; empty
// paragraphs are skipped.
func Paragraphs(htmlContent string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(NonContent).Remove()

	var out []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := joinText(p); text != "" {
			out = append(out, text)
		}
	})
	return out, nil
}

func joinText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collect(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collect(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, parts)
	}
}
