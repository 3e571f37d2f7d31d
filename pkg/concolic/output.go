package concolic

// Summary is the JSON-shaped session summary of spec.md §6.
type Summary struct {
	Paths            []PathSummary `json:"paths"`
	Iterations       int           `json:"iterations"`
	TerminatedReason string        `json:"terminated_reason"`
}

// PathSummary is one path's JSON representation.
type PathSummary struct {
	Seeds       map[string]interface{} `json:"seeds"`
	Constraints []string                `json:"constraints"`
	DurationNs  int64                   `json:"duration_ns"`
}

// NewSummary converts an ExploreResult to its JSON-serializable form.
func NewSummary(result ExploreResult) Summary {
	paths := make([]PathSummary, len(result.Paths))
	for i, p := range result.Paths {
		paths[i] = PathSummary{
			Seeds:       p.Seeds,
			Constraints: p.Constraints,
			DurationNs:  p.Duration.Nanoseconds(),
		}
	}
	return Summary{
		Paths:            paths,
		Iterations:       result.Iterations,
		TerminatedReason: string(result.TerminatedReason),
	}
}
