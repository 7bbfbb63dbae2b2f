// Package cli is the interactive trainer console. It drives the application
// controller; all data access goes through the controller's intents.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log"
	"os"

	"capifit/internal/client/app"
	"capifit/internal/client/config"
	"capifit/internal/client/gateway"
	"capifit/internal/client/session"
)

// App holds the running CLI's dependencies.
type App struct {
	config     *config.Config
	controller *app.Controller
	db         *sql.DB
	reader     *bufio.Reader
}

// NewApp opens the local session database and wires gateway, session store
// and controller together.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := session.Open(ctx, c.SessionPath)
	if err != nil {
		log.Printf("error opening session database: %s", err)
		return nil, err
	}

	sessions := session.NewStore(db)
	gw := gateway.NewHTTPGateway(c.ServerURL, c.RequestTimeout, sessions)
	sessions.AttachGateway(gw)

	return &App{
		config:     c,
		controller: app.New(gw, sessions),
		db:         db,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

// Run executes the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.root(ctx)
}

func (a *App) writer() io.Writer {
	return os.Stdout
}
