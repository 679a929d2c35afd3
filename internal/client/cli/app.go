package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/mpavlovs/authkeep/internal/client/config"
	"github.com/mpavlovs/authkeep/internal/client/session"
	"github.com/mpavlovs/authkeep/internal/client/storage"
	"github.com/mpavlovs/authkeep/internal/client/tokenstore"
	"github.com/mpavlovs/authkeep/internal/client/transport"
	"github.com/mpavlovs/authkeep/internal/common"
	"github.com/mpavlovs/authkeep/internal/cryptox"
	"github.com/mpavlovs/authkeep/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires configuration, local storage, the HTTP transport, and the
// session controller behind an interactive REPL.
type App struct {
	config     *config.Config
	controller *session.Controller
	client     transport.Client
	log        logging.Logger
	reader     *bufio.Reader
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.Default())

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	key, err := deviceKey(secretPathFor(cfg.DatabasePath))
	if err != nil {
		return nil, fmt.Errorf("failed to load device secret: %w", err)
	}
	store := tokenstore.New(db, key)

	installID, err := store.InstallationID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve installation id: %w", err)
	}

	baseURL, err := url.Parse(cfg.ServerBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server base URL %q: %w", cfg.ServerBaseURL, err)
	}

	apiClient := transport.NewHTTPClient(nil, *baseURL, cfg.RequestTimeout, installID)
	controller := session.NewController(store, apiClient, log)

	return &App{
		config:     cfg,
		controller: controller,
		client:     apiClient,
		log:        log,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

// Run hydrates the session, starts the background refresh watcher, and
// blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	a.controller.Hydrate(ctx)

	if st := a.controller.State(); st.IsAuthenticated() {
		fmt.Printf("Welcome back, %s\n", st.User.Email)
	}

	go a.controller.StartRefreshWatcher(ctx, a.config.RefreshCheckInterval, a.config.RefreshExpiryMargin)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.controller.IsAuthenticated()
}

func (a *App) getStatus() string {
	st := a.controller.State()
	if st.User != nil {
		return fmt.Sprintf("(%s)", st.User.Email)
	}
	return ""
}

// secretPathFor places the device secret next to the database file.
func secretPathFor(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "authkeep.secret")
}

// deviceKey loads (or creates on first run) the device secret and derives
// the store encryption key from it. On platforms with a real keychain the
// embedder supplies the key directly; the CLI settles for a 0600 file.
func deviceKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		raw = common.GenerateRandByteArray(64)
		if werr := os.WriteFile(path, raw, 0o600); werr != nil {
			return nil, werr
		}
	} else if err != nil {
		return nil, err
	}
	if len(raw) < 64 {
		return nil, fmt.Errorf("device secret at %s is truncated", path)
	}

	// first half is the secret, second half the derivation salt
	return cryptox.DeriveKey(raw[:32], raw[32:64]), nil
}
