package special

// DefaultHypTerms is the series budget used when a caller passes a
// non-positive term count to Hyp0F1.
const DefaultHypTerms = 100

// Hyp0F1 sums the confluent hypergeometric limit series
//
//	0F1(;b;z) = Σ_k z^k / ((b)_k k!)
//
// truncated after maxTerms terms. Truncation is a fixed-budget approximation;
// callers needing a tighter tolerance must raise maxTerms. Terms are built
// incrementally from their predecessor so large budgets do not overflow the
// factorial in the denominator.
func Hyp0F1(z, b float64, maxTerms int) float64 {
	if maxTerms <= 0 {
		maxTerms = DefaultHypTerms
	}

	sum := 0.0
	term := 1.0
	for k := 0; k <= maxTerms; k++ {
		sum += term
		term *= z / ((b + float64(k)) * float64(k+1))
	}
	return sum
}
