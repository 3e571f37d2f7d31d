package concolic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSummaryMapsFields(t *testing.T) {
	result := ExploreResult{
		Paths: []PathRecord{
			{
				Seeds:       map[string]interface{}{"x": int64(1)},
				Constraints: []string{"x > 0"},
				Duration:    2 * time.Millisecond,
			},
		},
		Iterations:       3,
		TerminatedReason: TerminatedExhausted,
	}

	summary := NewSummary(result)
	assert.Equal(t, 3, summary.Iterations)
	assert.Equal(t, "exhausted", summary.TerminatedReason)
	paths := summary.Paths
	assert.Len(t, paths, 1)
	assert.Equal(t, int64(1), paths[0].Seeds["x"])
	assert.Equal(t, []string{"x > 0"}, paths[0].Constraints)
	assert.Equal(t, int64(2*time.Millisecond), paths[0].DurationNs)
}
