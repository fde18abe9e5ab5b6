package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gamingclub/internal/checkout"
	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/models"
	"github.com/dmitrijs2005/gamingclub/internal/notify"
)

var (
	errBack      = errors.New("back")
	errCancelled = errors.New("checkout cancelled")
)

// wizardAsk reads one wizard answer; "back" and "cancel" are reserved.
func (a *App) wizardAsk(label string) (string, error) {
	s, err := getSimpleText(a.in, label, a.out)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(s) {
	case "back":
		return "", errBack
	case "cancel":
		return "", errCancelled
	}
	return s, nil
}

// Checkout runs the shipping, payment and confirmation steps.
func (a *App) Checkout(ctx context.Context, _ []string) error {
	if err := a.checkout.Start(ctx); err != nil {
		if errors.Is(err, common.ErrEmptyCart) {
			fmt.Fprintln(a.out, "Your cart is empty.")
			return nil
		}
		return err
	}
	fmt.Fprintln(a.out, "Checkout. Answer 'back' to return to the previous step or 'cancel' to leave.")

	for {
		var (
			err  error
			done bool
		)
		switch a.checkout.Step() {
		case checkout.StepShipping:
			err = a.shippingStep()
		case checkout.StepPayment:
			err = a.paymentStep()
		case checkout.StepConfirmation:
			done, err = a.confirmationStep(ctx)
		}

		switch {
		case errors.Is(err, errCancelled):
			fmt.Fprintln(a.out, "Checkout cancelled.")
			return nil
		case err != nil:
			return err
		case done:
			return nil
		}
	}
}

func (a *App) shippingStep() error {
	fmt.Fprintln(a.out, "Step 1/3: shipping")
	var s models.Shipping
	fields := []struct {
		label string
		dst   *string
	}{
		{"Full name", &s.Name},
		{"Email", &s.Email},
		{"Phone", &s.Phone},
		{"Address", &s.Address},
		{"City", &s.City},
		{"ZIP code", &s.Zip},
	}
	for i := 0; i < len(fields); {
		v, err := a.wizardAsk(fields[i].label)
		if errors.Is(err, errBack) {
			fmt.Fprintln(a.out, "Shipping is the first step; answer 'cancel' to leave checkout.")
			continue
		}
		if err != nil {
			return err
		}
		*fields[i].dst = v
		i++
	}
	return a.reportInvalid(a.checkout.SubmitShipping(s))
}

func (a *App) paymentStep() error {
	fmt.Fprintln(a.out, "Step 2/3: payment")
	var c models.Card
	fields := []struct {
		label string
		dst   *string
	}{
		{"Cardholder name", &c.Name},
		{"Card number", &c.Number},
		{"Expiry (MM/YY)", &c.Expiry},
		{"CVC", &c.CVC},
	}
	for _, f := range fields {
		v, err := a.wizardAsk(f.label)
		if errors.Is(err, errBack) {
			a.checkout.Back()
			return nil
		}
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return a.reportInvalid(a.checkout.SubmitPayment(c))
}

func (a *App) confirmationStep(ctx context.Context) (bool, error) {
	fmt.Fprintln(a.out, "Step 3/3: confirmation")
	sum, err := a.checkout.Summary(ctx)
	if err != nil {
		return true, err
	}
	renderSummary(a.out, sum, a.checkout.Shipping(), a.checkout.Payment())

	answer, err := a.wizardAsk("Type 'pay' to place the order")
	if errors.Is(err, errBack) {
		a.checkout.Back()
		return false, nil
	}
	if err != nil {
		return true, err
	}
	if strings.ToLower(answer) != "pay" {
		return false, nil
	}

	fmt.Fprintln(a.out, "Processing payment...")
	receipt, err := a.checkout.Submit(ctx)
	switch {
	case errors.Is(err, common.ErrPaymentDeclined):
		a.notify(notify.LevelError, "Payment failed", err.Error())
		return false, nil
	case errors.Is(err, common.ErrEmptyCart):
		fmt.Fprintln(a.out, "Your cart is empty.")
		return true, nil
	case err != nil && receipt.TransactionID == "":
		return true, err
	}

	renderReceipt(a.out, receipt)
	a.notify(notify.LevelSuccess, "Order placed", receipt.TransactionID)
	return true, err
}

// reportInvalid prints field errors and swallows them so the step repeats.
func (a *App) reportInvalid(err error) error {
	var ve *common.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	printValidation(a.out, ve)
	return nil
}

func printValidation(w io.Writer, ve *common.ValidationError) {
	for _, f := range ve.Fields {
		fmt.Fprintf(w, "  - %s: %s\n", f.Field, f.Message)
	}
}
