package commands

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/stockkeeper/pkg/api"
)

const defaultServer = "http://localhost:8080"

// app holds the flags shared by every command.
type app struct {
	server      string
	sessionPath string
	configPath  string
	httpClient  *http.Client
}

// NewRootCommand builds the stockctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{httpClient: &http.Client{Timeout: 30 * time.Second}}

	rootCmd := &cobra.Command{
		Use:   "stockctl",
		Short: "Personal inventory tracker client",
		Long: `stockctl talks to a stockkeeper server to manage your inventory.

Log in once with "stockctl login"; the session is kept in a session file
(--session-file, default ~/.stockkeeper/session.json) until "stockctl logout".
The "db" commands open the database file directly and need no server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	server := os.Getenv("STOCKKEEPER_SERVER")
	if server == "" {
		server = defaultServer
	}
	rootCmd.PersistentFlags().StringVar(&a.server, "server", server, "stockkeeper server URL")
	rootCmd.PersistentFlags().StringVar(&a.sessionPath, "session-file", DefaultSessionPath(), "where the login session is kept")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML config file (db commands)")

	rootCmd.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newItemsCmd(a),
		newSmsCmd(a),
		newDBCmd(a),
	)
	return rootCmd
}

func (a *app) sessions() *SessionFile {
	return NewSessionFile(a.sessionPath)
}

// client returns an unauthenticated API client for the configured server.
func (a *app) client() *api.Client {
	return api.NewClient(a.httpClient, a.server)
}

// authedClient returns a client carrying the stored session token. The
// server recorded at login wins over --server.
func (a *app) authedClient() (*api.Client, StoredSession, error) {
	s, err := a.sessions().Load()
	if err != nil {
		return nil, StoredSession{}, err
	}

	server := a.server
	if s.Server != "" {
		server = s.Server
	}
	c := api.NewClient(a.httpClient, server)
	c.SetToken(s.Token)
	return c, s, nil
}
