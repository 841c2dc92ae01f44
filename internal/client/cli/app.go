package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/gamezone/internal/client/avatars"
	"github.com/dmitrijs2005/gamezone/internal/client/client"
	"github.com/dmitrijs2005/gamezone/internal/client/config"
	"github.com/dmitrijs2005/gamezone/internal/client/services"
	"github.com/dmitrijs2005/gamezone/internal/client/state"
	"github.com/dmitrijs2005/gamezone/internal/logging"
)

// App wires the local store, the API client, the services and the state
// holders behind the command tree.
type App struct {
	config   *config.Config
	log      logging.Logger
	repos    *client.Repositories
	users    services.UserService
	products services.ProductService
	settings services.SettingsService

	user    *state.UserHolder
	catalog *state.ProductsHolder

	reader *bufio.Reader
	out    io.Writer

	wg sync.WaitGroup
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	repos, err := client.OpenRepositories(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := client.NewHTTPClient(c.APIBaseURL, &http.Client{Timeout: c.RequestTimeout}, log)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	var uploader avatars.Uploader
	switch s3, err := avatars.New(ctx, c.Avatars()); {
	case err == nil:
		uploader = s3
	case errors.Is(err, avatars.ErrNotConfigured):
		log.Debug(ctx, "avatar publishing disabled")
	default:
		log.Warn(ctx, "avatar publishing unavailable", "err", err)
	}

	a := &App{
		config:   c,
		log:      log,
		repos:    repos,
		users:    services.NewUserService(api, repos.Users, uploader, log),
		products: services.NewProductService(api, repos.Products, log),
		settings: services.NewSettingsService(repos.Metadata),
		reader:   bufio.NewReader(in),
		out:      out,
	}
	a.user = state.NewUserHolder(a.users, log)
	a.catalog = state.NewProductsHolder(a.products, log)
	return a, nil
}

// Close stops the holders and background work and closes the database.
func (a *App) Close() error {
	a.catalog.Close()
	a.user.Close()
	a.wg.Wait()
	return a.repos.Close()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) isLoggedIn() bool {
	return a.user.State().CurrentUserID != nil
}

// status is shown in the prompt: the logged-in email and the connection mode.
func (a *App) status() string {
	st := a.user.State()
	if st.CurrentUserID == nil {
		return ""
	}
	if st.Offline {
		return fmt.Sprintf("(%s offline)", st.Form.Email)
	}
	return fmt.Sprintf("(%s)", st.Form.Email)
}

// warmup refreshes the caches in the background.
func (a *App) warmup(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := services.Warmup(ctx, a.users, a.products, a.log); err != nil {
			a.log.Debug(ctx, "warm-up interrupted", "err", err)
		}
	}()
}

// followCatalog prints listing banners as they change, until ctx is done.
func (a *App) followCatalog(ctx context.Context) {
	sub, cancel := a.catalog.Subscribe()
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer cancel()

		last := ""
		for {
			select {
			case <-ctx.Done():
				return
			case st, ok := <-sub:
				if !ok {
					return
				}
				if st.Error != last && st.Error != "" {
					printlnFn(st.Error)
				}
				last = st.Error
			}
		}
	}()
}
