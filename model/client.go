package model

// Client is a susu client assigned to a collector.
type Client struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	PhoneNumber       string `json:"phone_number"`
	Address           string `json:"address,omitempty"`
	AmountDaily       string `json:"amount_daily"`
	IsFixed           bool   `json:"is_fixed"`
	StartDate         string `json:"start_date"`
	UniqueCode        string `json:"unique_code"`
	Collector         string `json:"collector"`
	CollectorUsername string `json:"collector_username"`
	CreatedAt         string `json:"created_at"`
}
