package cases

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// DefaultSeedSize is the number of cases a fresh store is seeded with.
const DefaultSeedSize = 100

// DefaultEpoch is the Date_Flagged of the first generated case.
var DefaultEpoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateLayout is how Date_Flagged is stored.
const DateLayout = "2006-01-02"

// statusWeights holds cumulative weights for Open/In Progress/Closed.
var statusWeights = []struct {
	status string
	upTo   float64
}{
	{StatusOpen, 0.5},
	{StatusInProgress, 0.8},
	{StatusClosed, 1.0},
}

// GenerateOptions configures Generate.
type GenerateOptions struct {
	Size  int
	Epoch time.Time
	Rand  *rand.Rand
}

// Generate builds a batch of synthetic cases C1..Cn with one case per day
// starting at the epoch. It never fails.
func Generate(opts GenerateOptions) []*Case {
	size := opts.Size
	if size <= 0 {
		size = DefaultSeedSize
	}
	epoch := opts.Epoch
	if epoch.IsZero() {
		epoch = DefaultEpoch
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	out := make([]*Case, size)
	for i := range size {
		out[i] = &Case{
			CaseID:      fmt.Sprintf("C%d", i+1),
			TraderID:    1000 + rng.IntN(1000),
			CaseType:    CaseTypes[rng.IntN(len(CaseTypes))],
			RiskScore:   10 + rng.IntN(90),
			AssignedTo:  Analysts[rng.IntN(len(Analysts))],
			Status:      pickStatus(rng.Float64()),
			DateFlagged: epoch.AddDate(0, 0, i).Format(DateLayout),
			Comments:    DefaultComment,
		}
	}
	return out
}

func pickStatus(u float64) string {
	for _, w := range statusWeights {
		if u < w.upTo {
			return w.status
		}
	}
	return StatusClosed
}
