// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package wizard

import (
	"errors"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog failed: %v", err)
	}

	want := PriorityCounts{All: 6, High: 3, Medium: 2, Low: 1}
	if got := catalog.Counts(); got != want {
		t.Fatalf("counts = %#v, want %#v", got, want)
	}

	if got := catalog.MonthlyCost(); got != 11900 {
		t.Fatalf("monthly cost = %d, want 11900", got)
	}
}

func TestCatalogFilterPreservesOrder(t *testing.T) {
	t.Parallel()

	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog failed: %v", err)
	}

	all := catalog.All()
	total := 0

	for _, p := range Priorities {
		filtered := catalog.Filter(p)
		if len(filtered) != catalog.Counts().Of(p) {
			t.Fatalf("%s: got %d entries, counts say %d", p, len(filtered), catalog.Counts().Of(p))
		}

		last := -1

		for _, s := range filtered {
			if s.Priority != p {
				t.Fatalf("%s filter returned %s entry %s", p, s.Priority, s.ID)
			}

			idx := -1

			for i, entry := range all {
				if entry.ID == s.ID {
					idx = i
				}
			}

			if idx <= last {
				t.Fatalf("%s filter changed catalog order at %s", p, s.ID)
			}

			last = idx
		}

		total += len(filtered)
	}

	if total != len(all) {
		t.Fatalf("filters cover %d entries, catalog has %d", total, len(all))
	}
}

func TestCatalogByID(t *testing.T) {
	t.Parallel()

	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog failed: %v", err)
	}

	s, err := catalog.ByID("vitamin-d3-5000")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}

	if s.Priority != PriorityHigh || s.Price != 1900 {
		t.Fatalf("unexpected entry: %#v", s)
	}

	if _, err := catalog.ByID("missing"); !errors.Is(err, ErrSupplementNotFound) {
		t.Fatalf("expected ErrSupplementNotFound, got %v", err)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "empty", data: "supplements: []", want: ErrCatalogEmpty},
		{
			name: "bad priority",
			data: "supplements:\n  - {id: a, product_name: A, priority: urgent, price: 1, purchase_url: https://example.com}",
			want: ErrCatalogInvalid,
		},
		{
			name: "negative price",
			data: "supplements:\n  - {id: a, product_name: A, priority: low, price: -1, purchase_url: https://example.com}",
			want: ErrCatalogInvalid,
		},
		{
			name: "plain http",
			data: "supplements:\n  - {id: a, product_name: A, priority: low, price: 1, purchase_url: http://example.com}",
			want: ErrCatalogInvalid,
		},
		{
			name: "duplicate id",
			data: "supplements:\n" +
				"  - {id: a, product_name: A, priority: low, price: 1, purchase_url: https://example.com}\n" +
				"  - {id: a, product_name: B, priority: high, price: 1, purchase_url: https://example.com}",
			want: ErrCatalogInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := LoadCatalog([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := LoadCatalog([]byte("supplements: [")); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	tests := map[string]Priority{
		"":       PriorityAll,
		"all":    PriorityAll,
		"HIGH":   PriorityHigh,
		" low ":  PriorityLow,
		"medium": PriorityMedium,
	}

	for raw, want := range tests {
		got, err := ParsePriority(raw)
		if err != nil || got != want {
			t.Fatalf("ParsePriority(%q) = %q, %v", raw, got, err)
		}
	}

	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrUnknownPriority) {
		t.Fatalf("expected ErrUnknownPriority, got %v", err)
	}
}
