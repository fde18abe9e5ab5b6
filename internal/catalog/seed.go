package catalog

import "github.com/dmitrijs2005/gamingclub/internal/models"

// PlaceholderImage is used for products created without an image.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=Gaming+Product"

// DefaultProducts returns a fresh copy of the first-run catalog.
func DefaultProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "Mechanical RGB Keyboard Pro",
			Description: "Mechanical keyboard with blue switches and customizable RGB lighting",
			Price:       129.99,
			Category:    models.CategoryPeripherals,
		},
		{
			ID:          2,
			Name:        "Elite Gaming Mouse",
			Description: "Ergonomic mouse with a 16000 DPI sensor and 8 programmable buttons",
			Price:       79.99,
			Category:    models.CategoryPeripherals,
		},
		{
			ID:          3,
			Name:        "7.1 Surround Headset",
			Description: "7.1 surround sound headset with a retractable noise-cancelling microphone",
			Price:       149.99,
			Category:    models.CategoryAudio,
		},
		{
			ID:          4,
			Name:        "Curved 144Hz Monitor",
			Description: "27 inch curved gaming monitor with a 144Hz refresh rate",
			Price:       349.99,
			Category:    models.CategoryMonitors,
		},
		{
			ID:          5,
			Name:        "Ergonomic Gaming Chair",
			Description: "Gaming chair with lumbar support, headrest and height adjustment",
			Price:       299.99,
			Category:    models.CategoryChairs,
		},
		{
			ID:          6,
			Name:        "RTX 4070 Gaming OC",
			Description: "NVIDIA RTX 4070 graphics card with 12GB GDDR6 for 4K gaming",
			Price:       649.99,
			Category:    models.CategoryComponents,
		},
		{
			ID:          7,
			Name:        "RGB Mousepad XL",
			Description: "Extra large gaming mousepad with RGB lit edges",
			Price:       39.99,
			Category:    models.CategoryAccessories,
		},
		{
			ID:          8,
			Name:        "Stream Deck Mini",
			Description: "Customizable streaming controller with 6 LCD keys",
			Price:       99.99,
			Category:    models.CategoryAccessories,
		},
	}
}
