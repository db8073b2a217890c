package cases

import (
	"math/rand/v2"
	"testing"
)

func sampleSet() []*Case {
	return []*Case{
		{CaseID: "C1", CaseType: TypeWashTrading, RiskScore: 80, Status: StatusOpen, Comments: DefaultComment},
		{CaseID: "C2", CaseType: TypeAMLViolation, RiskScore: 49, Status: StatusOpen, Comments: DefaultComment},
		{CaseID: "C3", CaseType: TypeWashTrading, RiskScore: 50, Status: StatusClosed, Comments: DefaultComment},
		{CaseID: "C4", CaseType: TypeInsiderTrading, RiskScore: 50, Status: StatusOpen, Comments: DefaultComment},
		{CaseID: "C5", CaseType: TypeSanctionsViolation, RiskScore: 99, Status: StatusInProgress, Comments: DefaultComment},
	}
}

func ids(set []*Case) []string {
	out := make([]string, len(set))
	for i, c := range set {
		out[i] = c.CaseID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		sel  Selector
		want []string
	}{
		{
			name: "open with risk at least 50 across all types",
			sel:  Selector{Statuses: []string{StatusOpen}, MinRisk: 50, CaseTypes: CaseTypes},
			want: []string{"C1", "C4"},
		},
		{
			name: "threshold is inclusive",
			sel:  Selector{Statuses: Statuses, MinRisk: 50, CaseTypes: []string{TypeWashTrading}},
			want: []string{"C1", "C3"},
		},
		{
			name: "zero threshold keeps everything in the sets",
			sel:  Selector{Statuses: Statuses, MinRisk: 0, CaseTypes: CaseTypes},
			want: []string{"C1", "C2", "C3", "C4", "C5"},
		},
		{
			name: "empty status set selects nothing",
			sel:  Selector{Statuses: nil, MinRisk: 0, CaseTypes: CaseTypes},
			want: []string{},
		},
		{
			name: "empty type set selects nothing",
			sel:  Selector{Statuses: Statuses, MinRisk: 0, CaseTypes: []string{}},
			want: []string{},
		},
		{
			name: "threshold above every score",
			sel:  Selector{Statuses: Statuses, MinRisk: 100, CaseTypes: CaseTypes},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(sampleSet(), tt.sel))
			if !equalIDs(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_NoFalsePositivesOrNegatives(t *testing.T) {
	set := Generate(GenerateOptions{Size: 500, Rand: rand.New(rand.NewPCG(7, 7))})
	sel := Selector{
		Statuses:  []string{StatusOpen, StatusClosed},
		MinRisk:   42,
		CaseTypes: []string{TypeAMLViolation, TypeInsiderTrading},
	}

	kept := make(map[string]bool)
	for _, c := range Filter(set, sel) {
		kept[c.CaseID] = true
	}

	for _, c := range set {
		match := (c.Status == StatusOpen || c.Status == StatusClosed) &&
			c.RiskScore >= 42 &&
			(c.CaseType == TypeAMLViolation || c.CaseType == TypeInsiderTrading)
		if match != kept[c.CaseID] {
			t.Errorf("case %s: matches=%v, kept=%v", c.CaseID, match, kept[c.CaseID])
		}
	}
}

func TestFilter_Idempotent(t *testing.T) {
	set := Generate(GenerateOptions{Size: 200, Rand: rand.New(rand.NewPCG(1, 2))})
	sel := Selector{Statuses: []string{StatusInProgress}, MinRisk: 30, CaseTypes: CaseTypes}

	once := Filter(set, sel)
	twice := Filter(once, sel)
	if !equalIDs(ids(once), ids(twice)) {
		t.Errorf("Filter is not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	set := sampleSet()
	before := ids(set)
	Filter(set, Selector{Statuses: []string{StatusClosed}, CaseTypes: CaseTypes})
	if !equalIDs(ids(set), before) {
		t.Errorf("input reordered: %v", ids(set))
	}
}

func TestApply(t *testing.T) {
	set := sampleSet()

	n := Apply(set, "C5", StatusClosed, "reviewed")
	if n != 1 {
		t.Fatalf("Apply() touched %d, want 1", n)
	}
	c := Find(set, "C5")
	if c.Status != StatusClosed || c.Comments != "reviewed" {
		t.Errorf("C5 = %q/%q, want Closed/reviewed", c.Status, c.Comments)
	}
	if other := Find(set, "C4"); other.Status != StatusOpen || other.Comments != DefaultComment {
		t.Errorf("C4 changed: %q/%q", other.Status, other.Comments)
	}
}

func TestApply_UnknownIDIsNoop(t *testing.T) {
	set := sampleSet()
	if n := Apply(set, "C999", StatusClosed, "x"); n != 0 {
		t.Errorf("Apply() touched %d, want 0", n)
	}
	for _, c := range set {
		if c.Comments != DefaultComment {
			t.Errorf("case %s comments changed to %q", c.CaseID, c.Comments)
		}
	}
}

func TestApply_DuplicateIDsAllUpdated(t *testing.T) {
	set := []*Case{
		{CaseID: "C1", Status: StatusOpen},
		{CaseID: "C1", Status: StatusInProgress},
	}
	if n := Apply(set, "C1", StatusClosed, "dup"); n != 2 {
		t.Fatalf("Apply() touched %d, want 2", n)
	}
	for i, c := range set {
		if c.Status != StatusClosed {
			t.Errorf("set[%d].Status = %q, want Closed", i, c.Status)
		}
	}
}

func TestApplyThenFilter(t *testing.T) {
	set := sampleSet()
	sel := Selector{Statuses: []string{StatusClosed}, MinRisk: 60, CaseTypes: CaseTypes}

	// C1 has risk 80, so closing it makes it match.
	Apply(set, "C1", StatusClosed, "done")
	if got := ids(Filter(set, sel)); !equalIDs(got, []string{"C1"}) {
		t.Errorf("after closing C1: %v, want [C1]", got)
	}

	// C2 has risk 49, so closing it does not.
	Apply(set, "C2", StatusClosed, "done")
	if got := ids(Filter(set, sel)); !equalIDs(got, []string{"C1"}) {
		t.Errorf("after closing C2: %v, want [C1]", got)
	}
}

func TestClone(t *testing.T) {
	set := sampleSet()
	cp := Clone(set)
	cp[0].Status = StatusClosed
	if set[0].Status != StatusOpen {
		t.Error("Clone shares case values with its input")
	}
}

func TestOptions(t *testing.T) {
	statuses, types := Options(sampleSet())
	if !equalIDs(statuses, []string{StatusOpen, StatusClosed, StatusInProgress}) {
		t.Errorf("statuses = %v", statuses)
	}
	want := []string{TypeWashTrading, TypeAMLViolation, TypeInsiderTrading, TypeSanctionsViolation}
	if !equalIDs(types, want) {
		t.Errorf("types = %v, want %v", types, want)
	}
}
