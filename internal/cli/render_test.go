package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/gamingclub/internal/catalog"
	"github.com/dmitrijs2005/gamingclub/internal/models"
)

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderSummary(t *testing.T) {
	sum := models.OrderSummary{
		Items: []models.LineItem{
			{ProductID: 1, Name: "Mechanical RGB Keyboard Pro", Price: 129.99, Quantity: 2},
			{ProductID: 7, Name: "XXL Gaming Mouse Pad With RGB Lighting Edge", Price: 39.99, Quantity: 1},
		},
		Subtotal: 299.97,
		Shipping: 5.99,
		Total:    305.96,
	}
	ship := models.Shipping{
		Name:    "Ana Gamer",
		Email:   "ana@example.com",
		Phone:   "+34 600 123 456",
		Address: "Calle Mayor 1",
		City:    "Madrid",
		Zip:     "28013",
	}
	pay := models.PaymentMethod{Method: "card", CardName: "ANA GAMER", Last4: "1111"}

	var buf bytes.Buffer
	renderSummary(&buf, sum, ship, pay)
	golden(t).Assert(t, "order_summary", buf.Bytes())
}

func TestRenderReceipt(t *testing.T) {
	r := models.Receipt{
		TransactionID: "GAMING_1741964966535",
		Amount:        305.96,
		Timestamp:     time.Date(2025, time.March, 14, 15, 9, 26, 535000000, time.UTC),
	}

	var buf bytes.Buffer
	renderReceipt(&buf, r)
	golden(t).Assert(t, "receipt", buf.Bytes())
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	renderStats(&buf, catalog.Stats{
		Products:   3,
		Categories: 2,
		TotalValue: 259.97,
		ByCategory: map[models.Category]int{models.CategoryPeripherals: 2, models.CategoryAudio: 1},
	})
	golden(t).Assert(t, "stats", buf.Bytes())
}

func TestRenderCart(t *testing.T) {
	var buf bytes.Buffer
	renderCart(&buf, nil, 0)
	assert.Equal(t, "Your cart is empty.\n", buf.String())

	buf.Reset()
	renderCart(&buf, []models.LineItem{{ProductID: 2, Name: "Elite Gaming Mouse", Price: 79.99, Quantity: 3}}, 239.97)
	assert.Contains(t, buf.String(), "Elite Gaming Mouse")
	assert.Contains(t, buf.String(), "239.97")
}

func TestRenderProduct_EmbeddedImage(t *testing.T) {
	var buf bytes.Buffer
	renderProduct(&buf, models.Product{ID: 1, Name: "Pad", Category: models.CategoryAccessories, Image: "data:image/png;base64,AAAA"})
	assert.Contains(t, buf.String(), "Image: embedded")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
