package models

// Plan is a purchasable subscription plan. Duration is in months, Price in
// whole currency units.
type Plan struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Duration int      `json:"duration"`
	Price    int      `json:"price"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular"`
}

// NewPlan carries the fields for a plan insert.
type NewPlan struct {
	Name     string
	Duration int
	Price    int
	Features []string
	Popular  bool
}
