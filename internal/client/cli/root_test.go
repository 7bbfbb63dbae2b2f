package cli

import (
	"bufio"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	_ "modernc.org/sqlite"

	"capifit/internal/client/app"
	"capifit/internal/client/config"
	"capifit/internal/client/gateway"
	"capifit/internal/client/session"
	"capifit/internal/domain"
)

type fakeGateway struct {
	gateway.Gateway

	registered gateway.RegisterInput
}

func (f *fakeGateway) Register(ctx context.Context, in gateway.RegisterInput) (string, error) {
	f.registered = in
	return primitive.NewObjectID().Hex(), nil
}

func scriptedApp(t *testing.T, fake *fakeGateway, input string) *App {
	t.Helper()
	db, err := session.Open(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := session.NewStore(db)
	store.AttachGateway(fake)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:     cfg,
		controller: app.New(fake, store),
		db:         db,
		reader:     bufio.NewReader(strings.NewReader(input)),
	}
}

func TestReplSharesReaderWithPrompts(t *testing.T) {
	restore := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("password1"), nil }
	t.Cleanup(func() { readPassword = restore })

	// The command line and the prompt answers arrive on the same stream;
	// none of them may be lost to loop read-ahead.
	fake := &fakeGateway{}
	a := scriptedApp(t, fake, "register\nAna Souza\nana@example.com\nexit\n")
	a.root(context.Background())

	require.Equal(t, "Ana Souza", fake.registered.Name)
	require.Equal(t, "ana@example.com", fake.registered.Email)
	require.Equal(t, "password1", fake.registered.Password)
	require.Equal(t, domain.RoleTrainer, fake.registered.Role)
}

func TestReplExitsOnEOF(t *testing.T) {
	a := scriptedApp(t, &fakeGateway{}, "help")
	// A partial last line with no trailing newline is still dispatched.
	a.root(context.Background())
}
