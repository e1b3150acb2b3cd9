package domain

// SequenceAnomalyKind classifies a finding of the sequence integrity audit.
type SequenceAnomalyKind string

const (
	// SequenceGap means a committed sequence value is missing for a date.
	// Gaps are legal (a reserved number whose transaction rolled back leaves
	// a permanent hole) but worth surfacing.
	SequenceGap SequenceAnomalyKind = "GAP"
	// SequenceDuplicate should be impossible while the primary key holds;
	// reported defensively.
	SequenceDuplicate SequenceAnomalyKind = "DUPLICATE"
)

// SequenceAnomaly is one finding of the read-only integrity audit. The audit
// reports, it never repairs.
type SequenceAnomaly struct {
	DatePrefix string              `json:"datePrefix"` // YYYYMMDD
	Kind       SequenceAnomalyKind `json:"kind"`
	Sequence   int64               `json:"sequence"`
}
