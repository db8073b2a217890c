package cases

import (
	"github.com/shopspring/decimal"
)

// Histogram geometry: 20 bins of width 5 over 0..100, last bin closed.
const (
	HistogramBins     = 20
	HistogramBinWidth = (MaxRiskScore - MinRiskScore) / HistogramBins
)

// RiskBin is one histogram bar, split by case type.
type RiskBin struct {
	Lower  int // inclusive
	Upper  int // exclusive, except for the last bin
	Total  int
	ByType map[string]int
}

// StatusShare is one slice of the status breakdown.
type StatusShare struct {
	Status  string
	Count   int
	Percent decimal.Decimal
}

// Summary is the aggregate view behind the two charts.
type Summary struct {
	Total     int
	MeanRisk  decimal.Decimal
	RiskBins  []RiskBin
	Breakdown []StatusShare
}

// Summarize computes the risk histogram and status breakdown for a set.
// Statuses appear in first-seen order.
func Summarize(set []*Case) Summary {
	s := Summary{
		Total:    len(set),
		MeanRisk: decimal.Zero,
		RiskBins: make([]RiskBin, HistogramBins),
	}
	for i := range s.RiskBins {
		s.RiskBins[i] = RiskBin{
			Lower:  MinRiskScore + i*HistogramBinWidth,
			Upper:  MinRiskScore + (i+1)*HistogramBinWidth,
			ByType: make(map[string]int),
		}
	}

	counts := make(map[string]int)
	var order []string
	sum := decimal.Zero
	for _, c := range set {
		bin := binIndex(c.RiskScore)
		s.RiskBins[bin].Total++
		s.RiskBins[bin].ByType[c.CaseType]++

		if _, ok := counts[c.Status]; !ok {
			order = append(order, c.Status)
		}
		counts[c.Status]++
		sum = sum.Add(decimal.NewFromInt(int64(c.RiskScore)))
	}

	if s.Total == 0 {
		return s
	}

	total := decimal.NewFromInt(int64(s.Total))
	s.MeanRisk = sum.DivRound(total, 2)
	hundred := decimal.NewFromInt(100)
	for _, status := range order {
		n := counts[status]
		s.Breakdown = append(s.Breakdown, StatusShare{
			Status:  status,
			Count:   n,
			Percent: decimal.NewFromInt(int64(n)).Mul(hundred).DivRound(total, 2),
		})
	}
	return s
}

func binIndex(score int) int {
	if score <= MinRiskScore {
		return 0
	}
	idx := (score - MinRiskScore) / HistogramBinWidth
	if idx >= HistogramBins {
		idx = HistogramBins - 1
	}
	return idx
}
