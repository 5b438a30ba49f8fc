package commands

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/stockkeeper/internal/auth"
	"github.com/mmynk/stockkeeper/internal/inventory"
	"github.com/mmynk/stockkeeper/internal/service"
	"github.com/mmynk/stockkeeper/internal/storage/sqlite"
)

type cli struct {
	t           *testing.T
	server      string
	sessionPath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"),
		sqlite.WithPasswordHasher(auth.NewPasswordHasher(bcrypt.MinCost)))
	require.NoError(t, err)

	controller := inventory.NewController(store)
	jwtManager := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)

	mux := http.NewServeMux()
	mux.Handle(service.NewAuthService(controller, jwtManager, slog.Default()).Handler())
	mux.Handle(service.NewInventoryService(controller, jwtManager, slog.Default()).Handler())
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return &cli{t: t, server: server.URL, sessionPath: filepath.Join(t.TempDir(), "session.json")}
}

// run executes stockctl with args and returns its output.
func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", c.server, "--session-file", c.sessionPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "stockctl %s", strings.Join(args, " "))
	return out
}

func TestCLIWorkflow(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("items", "list")
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	out := c.mustRun("register", "--username", "alice", "--password", "pw", "--phone", "5551234567")
	assert.Contains(t, out, "Registration successful")

	out = c.mustRun("login", "--username", "alice", "--password", "pw")
	assert.Contains(t, out, "Welcome, alice!")

	out = c.mustRun("whoami")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "sms alerts off")

	out = c.mustRun("items", "list")
	assert.Contains(t, out, "No items.")

	c.mustRun("items", "add", "Widget", "5")
	out = c.mustRun("items", "list")
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "5")

	c.mustRun("sms", "enable")
	out = c.mustRun("sms", "status")
	assert.Contains(t, out, "SMS alerts: on")

	c.mustRun("items", "clear")
	out = c.mustRun("items", "list")
	assert.Contains(t, out, "No items.")

	out = c.mustRun("logout")
	assert.Contains(t, out, "Logged out.")
	_, err = c.run("whoami")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

// firstItemID reads the ID column of the first row of "items list" output.
func firstItemID(t *testing.T, listOutput string) string {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(listOutput), "\n")
	require.GreaterOrEqual(t, len(lines), 2, "expected a header and at least one row:\n%s", listOutput)
	return strings.Fields(lines[1])[0]
}

func TestCLIItemUpdateAndDelete(t *testing.T) {
	alice := newCLI(t)
	bob := &cli{t: t, server: alice.server, sessionPath: filepath.Join(t.TempDir(), "bob.json")}

	alice.mustRun("register", "--username", "alice", "--password", "pw", "--phone", "5551234567")
	alice.mustRun("login", "--username", "alice", "--password", "pw")
	bob.mustRun("register", "--username", "bob", "--password", "pw", "--phone", "5559876543")
	bob.mustRun("login", "--username", "bob", "--password", "pw")

	alice.mustRun("items", "add", "Widget", "5")
	id := firstItemID(t, alice.mustRun("items", "list"))

	out := alice.mustRun("items", "update", id, "Gadget", "2")
	assert.Contains(t, out, "Updated item "+id)
	out = alice.mustRun("items", "list")
	assert.Contains(t, out, "Gadget")
	assert.NotContains(t, out, "Widget")

	// Another user's item ID is reported as not found.
	_, err := bob.run("items", "update", id, "Mine", "9")
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err), "got %v", err)
	_, err = bob.run("items", "delete", id)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err), "got %v", err)

	out = alice.mustRun("items", "list")
	assert.Contains(t, out, "Gadget")

	out = alice.mustRun("items", "delete", id)
	assert.Contains(t, out, "Deleted item "+id)
	out = alice.mustRun("items", "list")
	assert.Contains(t, out, "No items.")

	_, err = alice.run("items", "delete", id)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err), "got %v", err)
}

func TestCLIArgumentErrors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("items", "add", "Widget", "many")
	assert.Error(t, err)

	_, err = c.run("items", "delete", "abc")
	assert.Error(t, err)

	_, err = c.run("db", "reset")
	assert.ErrorIs(t, err, errNotConfirmed)
}

func TestDBReset(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reset.db")
	store, err := sqlite.New(dbPath, sqlite.WithPasswordHasher(auth.NewPasswordHasher(bcrypt.MinCost)))
	require.NoError(t, err)
	ctx := context.Background()
	_, err = store.RegisterUser(ctx, "alice", "pw", "5551234567")
	require.NoError(t, err)
	id, err := store.AuthenticateUser(ctx, "alice", "pw")
	require.NoError(t, err)
	_, err = store.InsertItem(ctx, "Widget", 5, id)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"db", "reset", "--yes", "--db", dbPath})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Cleared users and items")

	reopened, err := sqlite.New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	user, err := reopened.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, user)
	items, err := reopened.GetAllItems(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, items)
}
