package domain

// FilterCriteria is the optional, user-supplied subsetting of the accepted
// set. A zero value means no filtering. Amount bounds are inclusive; nil
// means unbounded on that side.
type FilterCriteria struct {
	Region    string   `json:"region,omitempty"`
	MinAmount *float64 `json:"min_amount,omitempty"`
	MaxAmount *float64 `json:"max_amount,omitempty"`
}

// IsZero reports whether no criteria were supplied at all.
func (c FilterCriteria) IsZero() bool {
	return c.Region == "" && c.MinAmount == nil && c.MaxAmount == nil
}

// FilterSummary records what the filter pass did to the accepted set.
type FilterSummary struct {
	Applied         bool `json:"applied"`
	Input           int  `json:"input"`
	RemovedByRegion int  `json:"removed_by_region"`
	RemovedByAmount int  `json:"removed_by_amount"`
	Output          int  `json:"output"`
}
