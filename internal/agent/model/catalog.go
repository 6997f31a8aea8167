package model

import "strings"

// CatalogEntry is one few-shot example handed to the intent classifier.
type CatalogEntry struct {
	Query            string `json:"query" yaml:"query"`
	Category         string `json:"category" yaml:"category"`
	ExpectedResponse string `json:"expected_response" yaml:"expected_response"`
}

// Agent is a human support agent. Specialty is the comma separated list
// stored in the catalog document.
type Agent struct {
	Name          string `json:"name" yaml:"name"`
	ContactNumber string `json:"contact_number" yaml:"contact_number"`
	Specialty     string `json:"specialty" yaml:"specialty"`
}

// Specialties splits Specialty into trimmed labels.
func (a Agent) Specialties() []string {
	parts := strings.Split(a.Specialty, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Covers reports whether key is a case-insensitive substring of the specialty list.
func (a Agent) Covers(key string) bool {
	return strings.Contains(strings.ToLower(a.Specialty), strings.ToLower(key))
}

// Catalog is the static support reference data. Read-only after load.
type Catalog struct {
	Queries []CatalogEntry `json:"queries" yaml:"queries"`
	Agents  []Agent        `json:"agents" yaml:"agents"`
}
