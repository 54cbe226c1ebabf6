/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package utils

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/niklasfasching/go-org/org"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var newOrgConfig = org.New

var parseOrg = func(config *org.Configuration, reader io.Reader) *org.Document {
	return config.Parse(reader, "")
}

var writeOrg = func(doc *org.Document, writer *org.HTMLWriter) (string, error) {
	return doc.Write(writer)
}

var (
	titleDirective = regexp.MustCompile(`(?im)^\s*#\+TITLE:\s+(.+)$`)
	firstHeadline  = regexp.MustCompile(`(?m)^\*+\s+(.+)$`)
)

// Page is a rendered org document.
type Page struct {
	Title string
	HTML  string
}

// LoadOrgPage reads name.org from fsys and renders it.
func LoadOrgPage(fsys fs.FS, name string) (Page, error) {
	raw, err := fs.ReadFile(fsys, path.Clean(name)+".org")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, fmt.Errorf("%w: %s", errPageNotFound, name)
		}

		return Page{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	body, err := RenderOrg(string(raw))
	if err != nil {
		return Page{}, fmt.Errorf("failed to render %s: %w", name, err)
	}

	return Page{Title: ExtractTitle(string(raw)), HTML: body}, nil
}

// RenderOrg converts org-mode content to an HTML fragment. Links leaving the
// site open in a new tab.
func RenderOrg(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", errEmptyOrgContent
	}

	config := newOrgConfig()

	doc := parseOrg(config, strings.NewReader(content))
	if doc.Error != nil {
		return "", fmt.Errorf("failed to parse org-mode content: %w", doc.Error)
	}

	writer := org.NewHTMLWriter()
	writer.HighlightCodeBlock = func(source, _ string, inline bool, _ map[string]string) string {
		if inline {
			return `<code>` + html.EscapeString(source) + `</code>`
		}

		return `<pre><code>` + html.EscapeString(source) + `</code></pre>`
	}

	rendered, err := writeOrg(doc, writer)
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}

	return markExternalLinks(rendered)
}

func markExternalLinks(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return body, nil
	}

	container := &nethtml.Node{Type: nethtml.ElementNode, Data: "div", DataAtom: atom.Div}

	nodes, err := nethtml.ParseFragment(strings.NewReader(body), container)
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered HTML: %w", err)
	}

	for _, node := range nodes {
		container.AppendChild(node)
	}

	walkLinks(container)

	var buf bytes.Buffer
	for child := container.FirstChild; child != nil; child = child.NextSibling {
		if err := nethtml.Render(&buf, child); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

func walkLinks(node *nethtml.Node) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode && child.DataAtom == atom.A && isExternalLink(attr(child, "href")) {
			setAttr(child, "target", "_blank")
			setAttr(child, "rel", "noopener noreferrer")
		}

		walkLinks(child)
	}
}

func attr(node *nethtml.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

func setAttr(node *nethtml.Node, key, val string) {
	for i, a := range node.Attr {
		if a.Key == key {
			node.Attr[i].Val = val
			return
		}
	}

	node.Attr = append(node.Attr, nethtml.Attribute{Key: key, Val: val})
}

func isExternalLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))

	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

// ExtractTitle returns the #+TITLE directive, falling back to the first
// headline.
func ExtractTitle(content string) string {
	if m := titleDirective.FindStringSubmatch(content); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	if m := firstHeadline.FindStringSubmatch(content); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	return ""
}
