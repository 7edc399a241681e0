package model

// ShippingRegion maps a named delivery area to a flat shipping cost.
// Read-only from the order flow's perspective; seeded at startup.
type ShippingRegion struct {
	ID   string            `json:"id" db:"id"`
	Name map[string]string `json:"name" db:"name"`
	Cost float64           `json:"cost" db:"cost"`
}

// DisplayName returns the English region name, falling back to any
// localisation.
func (r *ShippingRegion) DisplayName() string {
	if n, ok := r.Name["en"]; ok && n != "" {
		return n
	}
	for _, n := range r.Name {
		if n != "" {
			return n
		}
	}
	return r.ID
}
