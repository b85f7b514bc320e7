package effort

// Table is a read-only pricing snapshot mapping a component type to its
// complexity-to-hours entries. It is loaded once per transaction and passed
// explicitly; nothing in this package reaches for shared state.
type Table map[string]map[string]float64

// ComponentSpec is a requested component before pricing.
type ComponentSpec struct {
	Type         string
	Complexity   string
	Count        int
	FileRequired bool
	FileType     string
}

// PricedComponent is a ComponentSpec with the hours the table assigns to it.
type PricedComponent struct {
	ComponentSpec
	HoursPerItem float64
	TotalHours   float64
}

// Price resolves each spec against the table. A missing type or complexity
// prices at 0 hours rather than failing; a zero or negative count is treated
// as 1. Deterministic for a given (specs, table) pair.
func Price(specs []ComponentSpec, tbl Table) []PricedComponent {
	priced := make([]PricedComponent, 0, len(specs))
	for _, spec := range specs {
		count := spec.Count
		if count < 1 {
			count = 1
			spec.Count = 1
		}
		var perItem float64
		if byComplexity, ok := tbl[spec.Type]; ok {
			perItem = byComplexity[spec.Complexity]
		}
		priced = append(priced, PricedComponent{
			ComponentSpec: spec,
			HoursPerItem:  perItem,
			TotalHours:    float64(count) * perItem,
		})
	}
	return priced
}

// WorkloadHours sums the priced totals into the parent work item's derived
// workload figure.
func WorkloadHours(priced []PricedComponent) float64 {
	var total float64
	for _, p := range priced {
		total += p.TotalHours
	}
	return total
}
