package checkout

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/models"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe  = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	cardRe   = regexp.MustCompile(`^\d{13,19}$`)
	expiryRe = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	cvcRe    = regexp.MustCompile(`^\d{3,4}$`)
)

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// ValidateShipping checks the shipping form. All fields are required.
func ValidateShipping(s models.Shipping) error {
	fields := make(map[string]string)

	required := map[string]string{
		"name":    s.Name,
		"email":   s.Email,
		"phone":   s.Phone,
		"address": s.Address,
		"city":    s.City,
		"zip":     s.Zip,
	}
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			fields[name] = name + " is required"
		}
	}

	if _, missing := fields["email"]; !missing && !emailRe.MatchString(strings.TrimSpace(s.Email)) {
		fields["email"] = "enter a valid email address"
	}
	if _, missing := fields["phone"]; !missing && !phoneRe.MatchString(stripSpaces(s.Phone)) {
		fields["phone"] = "enter a valid phone number"
	}

	if len(fields) > 0 {
		return common.NewValidationError(fields)
	}
	return nil
}

// ValidateCard checks the payment form against the current month.
func ValidateCard(c models.Card, now time.Time) error {
	fields := make(map[string]string)

	if strings.TrimSpace(c.Name) == "" {
		fields["cardName"] = "cardholder name is required"
	}

	if number := stripSpaces(c.Number); number == "" {
		fields["cardNumber"] = "card number is required"
	} else if !cardRe.MatchString(number) {
		fields["cardNumber"] = "card number must have 13 to 19 digits"
	}

	if strings.TrimSpace(c.Expiry) == "" {
		fields["expiry"] = "expiry date is required"
	} else if msg := checkExpiry(strings.TrimSpace(c.Expiry), now); msg != "" {
		fields["expiry"] = msg
	}

	if cvc := strings.TrimSpace(c.CVC); cvc == "" {
		fields["cvc"] = "CVC is required"
	} else if !cvcRe.MatchString(cvc) {
		fields["cvc"] = "CVC must have 3 or 4 digits"
	}

	if len(fields) > 0 {
		return common.NewValidationError(fields)
	}
	return nil
}

func checkExpiry(expiry string, now time.Time) string {
	m := expiryRe.FindStringSubmatch(expiry)
	if m == nil {
		return "use the MM/YY format"
	}
	month, _ := strconv.Atoi(m[1])
	yy, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return "invalid month"
	}

	year := 2000 + yy
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return "card has expired"
	}
	return ""
}
