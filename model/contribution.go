package model

// Contribution is a single recorded cash contribution against a client's
// savings cycle.
type Contribution struct {
	ID           string `json:"id"`
	Client       string `json:"client"`
	Collector    string `json:"collector"`
	SavingsCycle string `json:"savings_cycle"`
	Amount       string `json:"amount"`
	DaysCovered  int    `json:"days_covered,omitempty"`
	CreatedAt    string `json:"created_at"`
}
