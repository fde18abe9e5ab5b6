package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/gamingclub/internal/auth"
	"github.com/dmitrijs2005/gamingclub/internal/cart"
	"github.com/dmitrijs2005/gamingclub/internal/catalog"
	"github.com/dmitrijs2005/gamingclub/internal/checkout"
	"github.com/dmitrijs2005/gamingclub/internal/config"
	"github.com/dmitrijs2005/gamingclub/internal/kv"
	"github.com/dmitrijs2005/gamingclub/internal/logging"
	"github.com/dmitrijs2005/gamingclub/internal/media"
	"github.com/dmitrijs2005/gamingclub/internal/models"
	"github.com/dmitrijs2005/gamingclub/internal/notify"
)

// App is one storefront session bound to a terminal.
type App struct {
	config *config.Config
	logger logging.Logger

	closer      io.Closer
	unsubscribe func()

	catalog  *catalog.Service
	cart     *cart.Service
	auth     *auth.Service
	checkout *checkout.Flow
	notes    *notify.Center
	images   media.Encoder
	watcher  *catalogWatcher

	// listed is set once a product listing was shown; stale is set by
	// catalog writes from this or another session.
	listed atomic.Bool
	stale  atomic.Bool

	in       *bufio.Scanner
	out      io.Writer
	readFile func(string) ([]byte, error)
}

// NewApp opens the configured store and builds the services on top of it.
// The caller must Close the app.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	repo, closer, err := kv.Open(ctx, cfg.KV())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StorageBackend, err)
	}

	app, err := newApp(ctx, cfg, logger, repo, closer, in, out)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger, repo kv.Repository,
	closer io.Closer, in io.Reader, out io.Writer) (*App, error) {

	a := &App{
		config:   cfg,
		logger:   logger,
		closer:   closer,
		notes:    notify.NewCenter(cfg.NotificationTTL),
		in:       bufio.NewScanner(in),
		out:      &syncWriter{w: out},
		readFile: os.ReadFile,
	}
	a.watcher = newCatalogWatcher(repo, cfg.PollInterval, a.onRemoteCatalogChange, logger)
	store := kv.NewObservable(&ownWrites{Repository: repo, watcher: a.watcher})

	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 {
		var err error
		if secret, err = auth.LoadOrCreateSecret(ctx, store); err != nil {
			return nil, err
		}
	}

	a.images = media.DataURIEncoder{}
	if cfg.ImageStore == config.ImageStoreS3 {
		a.images = media.NewS3Encoder(media.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}, nil, logger)
	}

	gateway := checkout.NewSimulatedGateway(cfg.PaymentDelay,
		checkout.NewRandomOutcome(cfg.PaymentSuccessRate, nil), logger)

	a.catalog = catalog.NewService(store, logger)
	a.cart = cart.NewService(store, a.catalog, logger)
	a.auth = auth.NewService(store, kv.NewMemoryRepository(), secret, logger)
	a.checkout = checkout.NewFlow(a.cart, gateway, logger)
	a.unsubscribe = a.catalog.Subscribe(a.markListingStale)
	return a, nil
}

func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) isLoggedIn() bool {
	who, err := a.auth.Current(context.Background())
	return err == nil && who != nil
}

func (a *App) isAdmin() bool {
	who, err := a.auth.Current(context.Background())
	return err == nil && who != nil && who.IsAdmin()
}

// getStatus renders the prompt status, e.g. "(admin, cart 3)".
func (a *App) getStatus() string {
	ctx := context.Background()
	s := ""
	if who, err := a.auth.Current(ctx); err == nil && who != nil {
		s = who.Username + ", "
	}
	n, err := a.cart.Count(ctx)
	if err != nil {
		a.logger.Warn(ctx, "count cart items", "error", err)
	}
	return fmt.Sprintf("(%scart %d)", s, n)
}

// notify records a notification and shows it right away.
func (a *App) notify(level notify.Level, title, message string) {
	n := a.notes.Push(level, title, message)
	fmt.Fprintln(a.out, formatNotification(n))
}

func (a *App) onRemoteCatalogChange() {
	a.markListingStale()
	a.notify(notify.LevelInfo, "Catalog", "the catalog was updated in another session")
}

func (a *App) markListingStale() { a.stale.Store(true) }

// listProducts renders a listing, preceded by a notice when the catalog
// changed since the previous one.
func (a *App) listProducts(products []models.Product) {
	changed := a.stale.Swap(false)
	if a.listed.Swap(true) && changed {
		fmt.Fprintln(a.out, "The catalog changed since your last listing.")
	}
	renderProducts(a.out, products)
}

// syncWriter serialises writes from the REPL and the catalog watcher.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
