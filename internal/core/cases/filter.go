package cases

// Selector is the three dashboard filters. Statuses and CaseTypes are
// membership sets; an empty set selects nothing.
type Selector struct {
	Statuses  []string
	MinRisk   int
	CaseTypes []string
}

// Filter returns the cases matching every selector, preserving input order.
// The input is not modified and the returned slice shares its elements.
func Filter(set []*Case, sel Selector) []*Case {
	statuses := toSet(sel.Statuses)
	types := toSet(sel.CaseTypes)

	out := make([]*Case, 0, len(set))
	for _, c := range set {
		if !statuses[c.Status] {
			continue
		}
		if c.RiskScore < sel.MinRisk {
			continue
		}
		if !types[c.CaseType] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Apply overwrites Status and Comments on every case whose ID matches and
// returns how many were touched. Zero means the ID was not found.
func Apply(set []*Case, caseID, status, comments string) int {
	n := 0
	for _, c := range set {
		if c.CaseID != caseID {
			continue
		}
		c.Status = status
		c.Comments = comments
		n++
	}
	return n
}

// Find returns the first case with the given ID, or nil.
func Find(set []*Case, caseID string) *Case {
	for _, c := range set {
		if c.CaseID == caseID {
			return c
		}
	}
	return nil
}

func toSet(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
