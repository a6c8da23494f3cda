package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dmitrijs2005/ecovate/internal/assistant"
	"github.com/dmitrijs2005/ecovate/internal/backup"
	"github.com/dmitrijs2005/ecovate/internal/calculator"
	"github.com/dmitrijs2005/ecovate/internal/config"
	"github.com/dmitrijs2005/ecovate/internal/dbx"
	"github.com/dmitrijs2005/ecovate/internal/filex"
	"github.com/dmitrijs2005/ecovate/internal/invest"
	"github.com/dmitrijs2005/ecovate/internal/logging"
	"github.com/dmitrijs2005/ecovate/internal/reference"
	"github.com/dmitrijs2005/ecovate/internal/services"
	"github.com/dmitrijs2005/ecovate/internal/store"
)

// investor confirms simulated investments.
type investor interface {
	Invest(ctx context.Context, req invest.Request) (invest.Receipt, error)
}

// backupper copies the record store to and from object storage.
type backupper interface {
	Export(ctx context.Context) (int, error)
	Import(ctx context.Context) (int, error)
}

type App struct {
	config *config.Config
	db     *sql.DB
	store  *store.Store
	logger logging.Logger

	accounts  services.AccountService
	userData  services.UserDataService
	catalog   *reference.Catalog
	emissions *calculator.Ledger
	credits   *calculator.Ledger
	assistant assistant.Responder
	investor  investor

	newBackupper func(ctx context.Context) (backupper, error)

	reader *bufio.Reader
	out    io.Writer
	rnd    *rand.Rand
	now    func() time.Time
}

// NewApp opens the record store and builds every service the REPL uses.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dialect, err := dbx.ParseDialect(c.StoreDriver)
	if err != nil {
		return nil, err
	}

	if dialect == dbx.SQLite {
		if err := filex.EnsureParentDir(filex.SQLitePath(c.StoreDSN)); err != nil {
			return nil, err
		}
	}

	db, err := store.InitDatabase(ctx, dialect, c.StoreDSN, logger)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	tables, err := calculator.LoadFile(c.FactorsFile)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	st := store.New(db, dialect, logger)
	now := time.Now
	catalog := reference.DemoCatalog(now())

	userData := services.NewUserDataService(st, catalog, logger)
	accounts := services.NewAccountService(st, services.AccountOptions{
		SessionSecret:          []byte(c.SessionSecret),
		SessionTTL:             c.SessionTTL,
		LoginAttemptsPerMinute: c.LoginAttemptsPerMinute,
	}, userData, logger)

	a := &App{
		config:    c,
		db:        db,
		store:     st,
		logger:    logger,
		accounts:  accounts,
		userData:  userData,
		catalog:   catalog,
		emissions: calculator.NewLedger(tables.Emissions),
		credits:   calculator.NewLedger(tables.Credits),
		assistant: assistant.NewDelayed(assistant.KeywordResponder{}, c.AssistantDelay),
		investor:  invest.NewSimulator(c.InvestDelay, logger),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		rnd:       rand.New(rand.NewPCG(uint64(now().UnixNano()), 0)),
		now:       now,
	}
	a.newBackupper = func(ctx context.Context) (backupper, error) {
		client, err := backup.NewS3Client(ctx, backup.S3Options{
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		return backup.NewExporter(st, client, c.S3Bucket, c.BackupPrefix, 0, logger), nil
	}
	return a, nil
}

// Run restores the previous session and serves the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to ECOVATE CLI (type 'help' for commands)")

	ok, err := a.accounts.RestoreSession(ctx)
	if err != nil {
		a.logger.Error(ctx, "session restore failed", "error", err)
	}
	if ok {
		acc, _ := a.accounts.Current()
		fmt.Fprintf(a.out, "Welcome back, %s!\n", acc.DisplayName)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the database.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.accounts.Current()
	return ok
}

func (a *App) getStatus() string {
	acc, ok := a.accounts.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s)", acc.Email)
}
