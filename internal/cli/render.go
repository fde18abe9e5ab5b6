package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/gamingclub/internal/catalog"
	"github.com/dmitrijs2005/gamingclub/internal/models"
	"github.com/dmitrijs2005/gamingclub/internal/notify"
)

const nameWidth = 32

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func renderProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	fmt.Fprintf(w, "%4s  %-*s %-14s %10s\n", "ID", nameWidth, "NAME", "CATEGORY", "PRICE")
	for _, p := range products {
		fmt.Fprintf(w, "%4d  %-*s %-14s %10.2f\n", p.ID, nameWidth, truncate(p.Name, nameWidth), p.Category.Title(), p.Price)
	}
}

func renderProduct(w io.Writer, p models.Product) {
	fmt.Fprintf(w, "#%d %s (%s)\n", p.ID, p.Name, p.Category.Title())
	fmt.Fprintf(w, "  %s\n", p.Description)
	fmt.Fprintf(w, "  Price: %.2f\n", p.Price)
	if strings.HasPrefix(p.Image, "data:") {
		fmt.Fprintln(w, "  Image: embedded")
	} else {
		fmt.Fprintf(w, "  Image: %s\n", p.Image)
	}
}

func renderCart(w io.Writer, items []models.LineItem, total float64) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "%4d  %-*s %3d x %9.2f %10.2f\n", it.ProductID, nameWidth, truncate(it.Name, nameWidth), it.Quantity, it.Price, it.Subtotal())
	}
	fmt.Fprintf(w, "%-*s %10.2f\n", nameWidth+23, "Total:", total)
}

// renderSummary prints the confirmation step.
func renderSummary(w io.Writer, sum models.OrderSummary, ship models.Shipping, pay models.PaymentMethod) {
	fmt.Fprintln(w, "Order summary")
	for _, it := range sum.Items {
		fmt.Fprintf(w, "  %3d x %-*s %10.2f\n", it.Quantity, nameWidth, truncate(it.Name, nameWidth), it.Subtotal())
	}
	fmt.Fprintf(w, "  %-38s %10.2f\n", "Subtotal", sum.Subtotal)
	fmt.Fprintf(w, "  %-38s %10.2f\n", "Shipping", sum.Shipping)
	fmt.Fprintf(w, "  %-38s %10.2f\n", "Total", sum.Total)
	fmt.Fprintf(w, "Ship to: %s, %s, %s %s\n", ship.Name, ship.Address, ship.Zip, ship.City)
	fmt.Fprintf(w, "Contact: %s, %s\n", ship.Email, ship.Phone)
	fmt.Fprintf(w, "Payment: card ending %s (%s)\n", pay.Last4, pay.CardName)
}

func renderReceipt(w io.Writer, r models.Receipt) {
	fmt.Fprintln(w, "Payment approved")
	fmt.Fprintf(w, "Transaction: %s\n", r.TransactionID)
	fmt.Fprintf(w, "Amount:      %.2f\n", r.Amount)
	fmt.Fprintf(w, "Date:        %s\n", r.Timestamp.UTC().Format("2006-01-02 15:04:05 MST"))
}

func renderStats(w io.Writer, st catalog.Stats) {
	fmt.Fprintf(w, "Products:    %d\n", st.Products)
	fmt.Fprintf(w, "Categories:  %d\n", st.Categories)
	fmt.Fprintf(w, "Total value: %.2f\n", st.TotalValue)

	cats := make([]models.Category, 0, len(st.ByCategory))
	for c := range st.ByCategory {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	for _, c := range cats {
		fmt.Fprintf(w, "  %-14s %d\n", c.Title(), st.ByCategory[c])
	}
}

func renderAccount(w io.Writer, who models.AccountView) {
	fmt.Fprintf(w, "%s <%s> role=%s\n", who.Username, who.Email, who.Role)
	if who.LastLogin != nil {
		fmt.Fprintf(w, "Last login: %s\n", who.LastLogin.Local().Format(time.DateTime))
	}
}

func formatNotification(n notify.Notification) string {
	if n.Message == "" {
		return fmt.Sprintf("[%s] %s", n.Level, n.Title)
	}
	return fmt.Sprintf("[%s] %s: %s", n.Level, n.Title, n.Message)
}
