// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/niklasfasching/go-org/org"
)

var errTestWriteFailed = errors.New("write failed")

func TestRenderOrg(t *testing.T) {
	t.Parallel()

	rendered, err := RenderOrg("* Heading\nSome /emphasised/ text")
	if err != nil {
		t.Fatalf("RenderOrg failed: %v", err)
	}

	if !strings.Contains(rendered, "Heading") || !strings.Contains(rendered, "emphasised</em>") {
		t.Fatalf("unexpected output: %s", rendered)
	}
}

func TestRenderOrgMarksExternalLinks(t *testing.T) {
	t.Parallel()

	rendered, err := RenderOrg("[[https://example.com][Ext]] and [[/tests][Start]]")
	if err != nil {
		t.Fatalf("RenderOrg failed: %v", err)
	}

	if !strings.Contains(rendered, `target="_blank"`) || !strings.Contains(rendered, `rel="noopener noreferrer"`) {
		t.Fatalf("expected external link attributes, got %s", rendered)
	}

	if strings.Count(rendered, `target="_blank"`) != 1 {
		t.Fatalf("expected only the external link to be marked, got %s", rendered)
	}
}

func TestRenderOrgEmpty(t *testing.T) {
	t.Parallel()

	if _, err := RenderOrg("  \n"); !errors.Is(err, errEmptyOrgContent) {
		t.Fatalf("expected errEmptyOrgContent, got %v", err)
	}
}

func TestRenderOrgWriteError(t *testing.T) {
	original := writeOrg
	writeOrg = func(*org.Document, *org.HTMLWriter) (string, error) {
		return "", errTestWriteFailed
	}

	t.Cleanup(func() { writeOrg = original })

	if _, err := RenderOrg("* Heading"); !errors.Is(err, errTestWriteFailed) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    string
	}{
		{content: "#+TITLE: About labwise\n* Other", want: "About labwise"},
		{content: "#+title:   lower case  ", want: "lower case"},
		{content: "text\n** Second level", want: "Second level"},
		{content: "no title", want: ""},
	}

	for _, tt := range tests {
		if got := ExtractTitle(tt.content); got != tt.want {
			t.Fatalf("ExtractTitle(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestLoadOrgPage(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"about.org": {Data: []byte("#+TITLE: About\nHello")},
	}

	page, err := LoadOrgPage(fsys, "about")
	if err != nil {
		t.Fatalf("LoadOrgPage failed: %v", err)
	}

	if page.Title != "About" || !strings.Contains(page.HTML, "Hello") {
		t.Fatalf("unexpected page: %#v", page)
	}

	if _, err := LoadOrgPage(fsys, "missing"); !errors.Is(err, errPageNotFound) {
		t.Fatalf("expected errPageNotFound, got %v", err)
	}
}
