// Package diff compares the aggregated signals of two scans.
package diff

import (
	"fmt"
	"strings"
)

// Status values for a comparison.
const (
	StatusCompared   = "compared"
	StatusNoBaseline = "no_baseline"
)

// FingerprintPolicy decides which signal fields identify a signal across scans.
type FingerprintPolicy string

const (
	// PolicyV1 keys on (path, type, function).
	PolicyV1 FingerprintPolicy = "v1"
	// PolicyV2 also keys on case, so two hazards in one function differ.
	PolicyV2 FingerprintPolicy = "v2"
)

// ParsePolicy validates a policy name; empty selects v1.
func ParsePolicy(s string) (FingerprintPolicy, error) {
	switch p := FingerprintPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PolicyV1:
		return PolicyV1, nil
	case PolicyV2:
		return PolicyV2, nil
	default:
		return "", fmt.Errorf("unknown fingerprint policy %q", s)
	}
}

// Fingerprint identifies a signal across scans. Case is empty under v1.
type Fingerprint struct {
	Path     string `json:"path" yaml:"path"`
	Type     string `json:"type" yaml:"type"`
	Function string `json:"function" yaml:"function"`
	Case     string `json:"case,omitempty" yaml:"case,omitempty"`
}

// String renders the fingerprint as a tuple.
func (f Fingerprint) String() string {
	if f.Case != "" {
		return fmt.Sprintf("(%s, %s, %s, %s)", f.Path, f.Type, f.Function, f.Case)
	}
	return fmt.Sprintf("(%s, %s, %s)", f.Path, f.Type, f.Function)
}

// Result is the outcome of comparing two scans.
type Result struct {
	Status         string            `json:"status" yaml:"status"`
	Policy         FingerprintPolicy `json:"policy" yaml:"policy"`
	CurrentScanID  string            `json:"current_scan_id,omitempty" yaml:"current_scan_id,omitempty"`
	PreviousScanID string            `json:"previous_scan_id,omitempty" yaml:"previous_scan_id,omitempty"`
	Added          []Fingerprint     `json:"added" yaml:"added"`
	Removed        []Fingerprint     `json:"removed" yaml:"removed"`
	AddedCount     int               `json:"added_count" yaml:"added_count"`
	RemovedCount   int               `json:"removed_count" yaml:"removed_count"`
}

// IsEmpty reports whether nothing was added or removed.
func (r *Result) IsEmpty() bool {
	return r.AddedCount == 0 && r.RemovedCount == 0
}
