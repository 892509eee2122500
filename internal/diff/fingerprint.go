package diff

import (
	"strconv"
	"strings"

	"coderecon/internal/model"
)

// fingerprint applies policy to one aggregated signal.
func fingerprint(s model.AggregatedSignal, policy FingerprintPolicy) Fingerprint {
	f := Fingerprint{Path: s.Path, Type: s.Type, Function: s.Function}
	if policy == PolicyV2 {
		f.Case = s.Case
	}
	return f
}

// key encodes a fingerprint canonically. Fields are length-prefixed
// (${len}:${value}) so no field value can collide with a delimiter.
func (f Fingerprint) key() string {
	var sb strings.Builder
	for _, field := range []string{f.Path, f.Type, f.Function, f.Case} {
		sb.WriteString(strconv.Itoa(len(field)))
		sb.WriteByte(':')
		sb.WriteString(field)
	}
	return sb.String()
}

func less(a, b Fingerprint) bool {
	if a.Path != b.Path {
		return a.Path < b.Path
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	if a.Function != b.Function {
		return a.Function < b.Function
	}
	return a.Case < b.Case
}
