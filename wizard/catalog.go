/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package wizard

import (
	_ "embed"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Priority is a static display tag on a catalog entry.
type Priority string

const (
	PriorityAll    Priority = "all"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the concrete priorities in display order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority accepts "all" or one of the concrete priorities. An empty
// value means "all".
func ParsePriority(value string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(value)))
	switch p {
	case "":
		return PriorityAll, nil
	case PriorityAll, PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, value)
	}
}

// Label is the text shown on the priority filter tabs.
func (p Priority) Label() string {
	switch p {
	case PriorityAll:
		return "All"
	case PriorityHigh:
		return "Essential"
	case PriorityMedium:
		return "Recommended"
	case PriorityLow:
		return "Preventive"
	default:
		return string(p)
	}
}

// Supplement is one static catalog entry.
type Supplement struct {
	ID           string   `yaml:"id"`
	Priority     Priority `yaml:"priority"`
	Category     string   `yaml:"category"`
	ProductName  string   `yaml:"product_name"`
	Brand        string   `yaml:"brand"`
	Dosage       string   `yaml:"dosage"`
	Timing       []string `yaml:"timing"`
	Duration     string   `yaml:"duration"`
	Price        int      `yaml:"price"`
	PurchaseURL  string   `yaml:"purchase_url"`
	Reasoning    string   `yaml:"reasoning"`
	Alternatives []string `yaml:"alternatives"`
	ImageURL     string   `yaml:"image_url,omitempty"`
}

func (s Supplement) validate() error {
	if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.ProductName) == "" {
		return fmt.Errorf("%w: id and product name are required", ErrCatalogInvalid)
	}

	switch s.Priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return fmt.Errorf("%w: %s has priority %q", ErrCatalogInvalid, s.ID, s.Priority)
	}

	if s.Price < 0 {
		return fmt.Errorf("%w: %s has a negative price", ErrCatalogInvalid, s.ID)
	}

	u, err := url.Parse(s.PurchaseURL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: %s has purchase url %q", ErrCatalogInvalid, s.ID, s.PurchaseURL)
	}

	return nil
}

// Catalog is the fixed list of supplements. It is never modified after
// loading.
type Catalog struct {
	supplements []Supplement
}

// PriorityCounts holds the number of entries per priority.
type PriorityCounts struct {
	All    int
	High   int
	Medium int
	Low    int
}

// Of returns the count for p.
func (c PriorityCounts) Of(p Priority) int {
	switch p {
	case PriorityHigh:
		return c.High
	case PriorityMedium:
		return c.Medium
	case PriorityLow:
		return c.Low
	default:
		return c.All
	}
}

// LoadCatalog parses and validates a YAML catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Supplements []Supplement `yaml:"supplements"`
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if len(doc.Supplements) == 0 {
		return nil, ErrCatalogEmpty
	}

	seen := make(map[string]struct{}, len(doc.Supplements))
	for _, s := range doc.Supplements {
		if err := s.validate(); err != nil {
			return nil, err
		}

		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrCatalogInvalid, s.ID)
		}

		seen[s.ID] = struct{}{}
	}

	return &Catalog{supplements: doc.Supplements}, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return LoadCatalog(catalogYAML)
})

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// All returns every entry in catalog order.
func (c *Catalog) All() []Supplement {
	return c.Filter(PriorityAll)
}

// Filter returns the entries with priority p, or every entry for PriorityAll.
func (c *Catalog) Filter(p Priority) []Supplement {
	out := make([]Supplement, 0, len(c.supplements))
	for _, s := range c.supplements {
		if p == PriorityAll || s.Priority == p {
			out = append(out, s)
		}
	}

	return out
}

// Counts returns how many entries carry each priority.
func (c *Catalog) Counts() PriorityCounts {
	counts := PriorityCounts{All: len(c.supplements)}
	for _, s := range c.supplements {
		switch s.Priority {
		case PriorityHigh:
			counts.High++
		case PriorityMedium:
			counts.Medium++
		case PriorityLow:
			counts.Low++
		}
	}

	return counts
}

// MonthlyCost is the combined price of the high and medium priority entries.
func (c *Catalog) MonthlyCost() int {
	total := 0
	for _, s := range c.supplements {
		if s.Priority == PriorityHigh || s.Priority == PriorityMedium {
			total += s.Price
		}
	}

	return total
}

// ByID returns the entry with the given id.
func (c *Catalog) ByID(id string) (Supplement, error) {
	for _, s := range c.supplements {
		if s.ID == id {
			return s, nil
		}
	}

	return Supplement{}, fmt.Errorf("%w: %s", ErrSupplementNotFound, id)
}
