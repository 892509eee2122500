package diff

import (
	"sort"

	reconerrors "coderecon/internal/errors"
	"coderecon/internal/model"
	"coderecon/internal/snapshot"
)

// Compare returns the fingerprints present in only one of two scans.
// A nil previous scan yields a no_baseline result.
func Compare(current, previous *snapshot.Analysis, policy FingerprintPolicy) *Result {
	if policy == "" {
		policy = PolicyV1
	}
	r := &Result{
		Status:  StatusNoBaseline,
		Policy:  policy,
		Added:   []Fingerprint{},
		Removed: []Fingerprint{},
	}
	if current != nil {
		r.CurrentScanID = current.ScanID
	}
	if previous == nil {
		return r
	}
	r.Status = StatusCompared
	r.PreviousScanID = previous.ScanID

	var cur []model.AggregatedSignal
	if current != nil {
		cur = current.Signals
	}
	curSet := set(cur, policy)
	prevSet := set(previous.Signals, policy)

	for k, f := range curSet {
		if _, ok := prevSet[k]; !ok {
			r.Added = append(r.Added, f)
		}
	}
	for k, f := range prevSet {
		if _, ok := curSet[k]; !ok {
			r.Removed = append(r.Removed, f)
		}
	}

	sort.Slice(r.Added, func(i, j int) bool { return less(r.Added[i], r.Added[j]) })
	sort.Slice(r.Removed, func(i, j int) bool { return less(r.Removed[i], r.Removed[j]) })
	r.AddedCount = len(r.Added)
	r.RemovedCount = len(r.Removed)
	return r
}

// SnapshotLoader reads stored scans.
type SnapshotLoader interface {
	Load() (*snapshot.Analysis, error)
	LoadPrevious() (*snapshot.Analysis, error)
}

// CompareStored compares the stored current and previous scans. A missing
// current scan is SNAPSHOT_MISSING; a missing previous one is no_baseline.
func CompareStored(store SnapshotLoader, policy FingerprintPolicy) (*Result, error) {
	current, err := store.Load()
	if err != nil {
		return nil, err
	}

	previous, err := store.LoadPrevious()
	if err != nil {
		if reconerrors.HasCode(err, reconerrors.SnapshotMissing) {
			return Compare(current, nil, policy), nil
		}
		return nil, err
	}
	return Compare(current, previous, policy), nil
}

func set(signals []model.AggregatedSignal, policy FingerprintPolicy) map[string]Fingerprint {
	out := make(map[string]Fingerprint, len(signals))
	for _, s := range signals {
		f := fingerprint(s, policy)
		out[f.key()] = f
	}
	return out
}
