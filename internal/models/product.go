package models

// Category is the closed set of catalog sections.
type Category string

const (
	CategoryPeripherals Category = "peripherals"
	CategoryComponents  Category = "components"
	CategoryChairs      Category = "chairs"
	CategoryAudio       Category = "audio"
	CategoryMonitors    Category = "monitors"
	CategoryAccessories Category = "accessories"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryPeripherals,
	CategoryComponents,
	CategoryChairs,
	CategoryAudio,
	CategoryMonitors,
	CategoryAccessories,
}

var categoryTitles = map[Category]string{
	CategoryPeripherals: "Peripherals",
	CategoryComponents:  "Components",
	CategoryChairs:      "Gaming Chairs",
	CategoryAudio:       "Audio",
	CategoryMonitors:    "Monitors",
	CategoryAccessories: "Accessories",
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok
}

// Title is the human readable name shown in listings.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Product is one catalog entry as persisted under the "products" key.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	Image       string   `json:"image"`
}
