package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ppiankov/mirror/internal/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// VisibleText returns the readable text of an HTML document
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	return visibleText(doc), nil
}

// parseHTML treats every <article> as an entry, or the whole body when there are none
func parseHTML(data []byte) ([]model.JournalEntry, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	articles := findAll(doc, atom.Article)
	if len(articles) == 0 {
		return []model.JournalEntry{{Text: visibleText(doc)}}, nil
	}

	entries := make([]model.JournalEntry, 0, len(articles))
	for _, article := range articles {
		entries = append(entries, model.JournalEntry{
			ID:   attr(article, "id"),
			Text: visibleText(article),
		})
	}
	return entries, nil
}

// visibleText collects text nodes, skipping scripts/styles
func visibleText(n *html.Node) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Head, atom.Script, atom.Style, atom.Noscript, atom.Iframe, atom.Template:
				return
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, strings.Join(strings.Fields(text), " "))
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.Join(parts, " ")
}

// findAll returns the outermost elements of the given type, in document order
func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var found []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = append(found, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
