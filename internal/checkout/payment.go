package checkout

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/logging"
	"github.com/dmitrijs2005/gamingclub/internal/models"
)

// Charge is what the flow asks a gateway to collect.
type Charge struct {
	Amount   float64
	Shipping models.Shipping
	Payment  models.PaymentMethod
}

// Gateway collects payments. A refusal is reported as
// common.ErrPaymentDeclined.
type Gateway interface {
	Charge(ctx context.Context, c Charge) (models.Receipt, error)
}

// Outcome decides whether a simulated charge is approved.
type Outcome interface {
	Approve() bool
}

// FixedOutcome always approves (true) or always declines (false).
type FixedOutcome bool

func (f FixedOutcome) Approve() bool { return bool(f) }

// RandomOutcome approves with probability Rate.
type RandomOutcome struct {
	Rate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomOutcome uses src for reproducible runs; a nil src uses the
// runtime-seeded global generator.
func NewRandomOutcome(rate float64, src rand.Source) *RandomOutcome {
	o := &RandomOutcome{Rate: rate}
	if src != nil {
		o.rng = rand.New(src)
	}
	return o
}

func (o *RandomOutcome) Approve() bool {
	if o.rng == nil {
		return rand.Float64() < o.Rate
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rng.Float64() < o.Rate
}

// SimulatedGateway waits Delay and then approves or declines according to
// Outcome. Transaction ids look like GAMING_<unix millis>.
type SimulatedGateway struct {
	Delay   time.Duration
	Outcome Outcome

	now    func() time.Time
	logger logging.Logger
}

func NewSimulatedGateway(delay time.Duration, outcome Outcome, logger logging.Logger) *SimulatedGateway {
	return &SimulatedGateway{
		Delay:   delay,
		Outcome: outcome,
		now:     time.Now,
		logger:  logger.With("component", "payment"),
	}
}

func (g *SimulatedGateway) Charge(ctx context.Context, c Charge) (models.Receipt, error) {
	if g.Delay > 0 {
		t := time.NewTimer(g.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return models.Receipt{}, fmt.Errorf("payment aborted: %w", ctx.Err())
		}
	}

	if !g.Outcome.Approve() {
		g.logger.Info(ctx, "simulated payment declined", "amount", c.Amount)
		return models.Receipt{}, common.ErrPaymentDeclined
	}

	at := g.now()
	r := models.Receipt{
		TransactionID: fmt.Sprintf("GAMING_%d", at.UnixMilli()),
		Amount:        c.Amount,
		Timestamp:     at,
	}
	g.logger.Info(ctx, "simulated payment approved", "transaction_id", r.TransactionID, "amount", c.Amount)
	return r, nil
}
