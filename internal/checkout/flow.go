// Package checkout implements the three-step checkout wizard:
// shipping, payment and confirmation.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gamingclub/internal/cart"
	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/logging"
	"github.com/dmitrijs2005/gamingclub/internal/models"
)

// ShippingFee is added to every order.
const ShippingFee = 5.99

type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Cart is the part of the cart store the flow needs.
type Cart interface {
	Items(ctx context.Context) ([]models.LineItem, error)
	Clear(ctx context.Context) error
}

// Flow holds the state of one checkout. It is not safe for concurrent use.
type Flow struct {
	cart    Cart
	gateway Gateway
	now     func() time.Time
	logger  logging.Logger

	step     Step
	shipping models.Shipping
	payment  models.PaymentMethod
}

func NewFlow(c Cart, gateway Gateway, logger logging.Logger) *Flow {
	return &Flow{
		cart:    c,
		gateway: gateway,
		now:     time.Now,
		logger:  logger.With("component", "checkout"),
		step:    StepShipping,
	}
}

func (f *Flow) Step() Step                    { return f.step }
func (f *Flow) Shipping() models.Shipping     { return f.shipping }
func (f *Flow) Payment() models.PaymentMethod { return f.payment }

// Start opens the wizard at the shipping step. An empty cart cannot be
// checked out.
func (f *Flow) Start(ctx context.Context) error {
	items, err := f.cart.Items(ctx)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	if len(items) == 0 {
		return common.ErrEmptyCart
	}
	f.reset()
	return nil
}

func (f *Flow) reset() {
	f.step = StepShipping
	f.shipping = models.Shipping{}
	f.payment = models.PaymentMethod{}
}

func (f *Flow) SubmitShipping(s models.Shipping) error {
	if f.step != StepShipping {
		return common.ErrWrongStep
	}
	if err := ValidateShipping(s); err != nil {
		return err
	}
	f.shipping = s
	f.step = StepPayment
	return nil
}

// SubmitPayment validates the card and keeps only the holder name and the
// last four digits of the number.
func (f *Flow) SubmitPayment(c models.Card) error {
	if f.step != StepPayment {
		return common.ErrWrongStep
	}
	if err := ValidateCard(c, f.now()); err != nil {
		return err
	}
	number := stripSpaces(c.Number)
	f.payment = models.PaymentMethod{
		Method:   "card",
		CardName: c.Name,
		Last4:    number[len(number)-4:],
	}
	f.step = StepConfirmation
	return nil
}

// Back moves one step back without validating anything.
func (f *Flow) Back() {
	if f.step > StepShipping {
		f.step--
	}
}

func (f *Flow) Summary(ctx context.Context) (models.OrderSummary, error) {
	items, err := f.cart.Items(ctx)
	if err != nil {
		return models.OrderSummary{}, fmt.Errorf("load cart: %w", err)
	}
	sub := cart.Subtotal(items)
	return models.OrderSummary{
		Items:    items,
		Subtotal: sub,
		Shipping: ShippingFee,
		Total:    sub + ShippingFee,
	}, nil
}

// Submit charges the order total. On success the cart is emptied and the
// wizard starts over; on a decline the flow stays at confirmation so the
// user can retry or go back.
func (f *Flow) Submit(ctx context.Context) (models.Receipt, error) {
	if f.step != StepConfirmation {
		return models.Receipt{}, common.ErrWrongStep
	}

	sum, err := f.Summary(ctx)
	if err != nil {
		return models.Receipt{}, err
	}
	if len(sum.Items) == 0 {
		return models.Receipt{}, common.ErrEmptyCart
	}

	receipt, err := f.gateway.Charge(ctx, Charge{Amount: sum.Total, Shipping: f.shipping, Payment: f.payment})
	if err != nil {
		if !errors.Is(err, common.ErrPaymentDeclined) {
			f.logger.Error(ctx, "payment failed", "error", err)
		}
		return models.Receipt{}, err
	}

	f.reset()
	if err := f.cart.Clear(ctx); err != nil {
		return receipt, fmt.Errorf("clear cart after payment %s: %w", receipt.TransactionID, err)
	}
	f.logger.Info(ctx, "order placed", "transaction_id", receipt.TransactionID, "total", sum.Total)
	return receipt, nil
}
