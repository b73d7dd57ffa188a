// Command authcli drives the federated auth engine from a terminal: it
// prints the authorization URL, consumes the pasted redirect and walks the
// same state machine an embedding application would observe.
package main

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/devconsole/go-auth-sdk/auth"
	"github.com/devconsole/go-auth-sdk/internal/config"
	"github.com/devconsole/go-auth-sdk/oneauth"
	"github.com/devconsole/go-auth-sdk/secrets"
	"github.com/devconsole/go-auth-sdk/session"
	"github.com/devconsole/go-auth-sdk/twoauth"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cli struct {
	configPath string
	verbose    bool

	log      zerolog.Logger
	one      *oneauth.Client
	engine   *auth.Engine
	sessions *session.Manager
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "authcli",
		Short:         "Drive the federated auth engine from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "authcli.yaml", "path to the configuration file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		c.statusCmd(),
		c.loginCmd(),
		c.registerCmd(),
		c.refreshCmd(),
		c.logoutCmd(),
		c.receiptLoginCmd(),
	)
	return root
}

func (c *cli) setup() error {
	figure.NewFigure("authcli", "", true).Print()

	level := zerolog.InfoLevel
	if c.verbose {
		level = zerolog.DebugLevel
	}
	c.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	crypto, err := secrets.Open(cfg.Store.KeyPath)
	if err != nil {
		return err
	}
	if crypto.Degraded() {
		c.log.Warn().Msg("key file unavailable, sessions will not survive a restart")
	}

	store := session.NewFileStore(cfg.Store.Path, crypto, session.WithStoreLogger(c.log))
	c.sessions = session.NewManager(store, session.WithManagerLogger(c.log))

	c.one = oneauth.NewClient(cfg.One, oneauth.WithLogger(c.log))
	two := twoauth.NewClient(cfg.Two, twoauth.WithLogger(c.log))

	c.engine, err = auth.New(auth.Deps{
		Identity:   c.one,
		Federation: two,
		Sessions:   c.sessions,
	}, auth.WithLogger(c.log))
	return err
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the persisted session and whether it has expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.engine.Bootstrap(cmd.Context())
			current := c.engine.CurrentSession()
			if current == nil {
				fmt.Println("no session")
				return nil
			}
			fmt.Printf("session active: %v\n", c.engine.SessionActive())
			if current.TwoTokens.Username != nil {
				fmt.Printf("username: %s\n", *current.TwoTokens.Username)
			}
			return nil
		},
	}
}

func (c *cli) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Run the browser login flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.engine.Login()
			return c.completeAuthorization(cmd)
		},
	}
}

func (c *cli) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Run the browser registration flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.engine.Register(cmd.Context())
			return c.completeAuthorization(cmd)
		},
	}
}

// completeAuthorization renders the launch request into a URL, waits for the
// pasted redirect and feeds the parsed response back into the engine.
func (c *cli) completeAuthorization(cmd *cobra.Command) error {
	state := c.engine.State()
	if state.Phase != auth.PhaseLaunchAuthorization {
		return fmt.Errorf("expected an authorization request, engine is %s: %v", state.Phase, state.Err)
	}

	verifier := oauth2.GenerateVerifier()
	authURL := c.one.AuthorizationURL(*state.Request, oauth2.S256ChallengeOption(verifier))

	fmt.Println("open this URL in a browser:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()
	fmt.Print("paste the redirect URL here: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return err
	}

	redirect, err := url.Parse(strings.TrimSpace(line))
	if err != nil {
		return fmt.Errorf("parse redirect URL: %w", err)
	}
	query := redirect.Query()

	result := oneauth.AuthorizationResult{Code: oneauth.ResultOK}
	if errTag := query.Get("error_description"); errTag != "" || query.Get("error") != "" {
		result.Err = &oneauth.AuthorizationError{Description: errTag}
	} else {
		result.Response = &oneauth.AuthorizationResponse{
			AuthorizationCode: query.Get("code"),
			CodeVerifier:      verifier,
			State:             query.Get("state"),
		}
	}

	c.engine.HandleAuthorizationResult(cmd.Context(), result)
	return c.report()
}

func (c *cli) refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Renew the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.engine.RefreshSession(cmd.Context()) {
				return fmt.Errorf("refresh failed: %v", c.engine.State().Err)
			}
			fmt.Println("session renewed")
			return nil
		},
	}
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.engine.Logout(cmd.Context())
			fmt.Println("logged out")
			return nil
		},
	}
}

func (c *cli) receiptLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt-login <purchase-token>",
		Short: "Log in with a Google Play purchase token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.engine.LoginWithGoogleReceipt(cmd.Context(), args[0])
			return c.report()
		},
	}
}

func (c *cli) report() error {
	state := c.engine.State()
	switch state.Phase {
	case auth.PhaseAuthenticated:
		fmt.Println("authenticated")
		if state.Session != nil && state.Session.TwoTokens.Username != nil {
			fmt.Printf("username: %s\n", *state.Session.TwoTokens.Username)
		}
		return nil
	case auth.PhaseFailed:
		return fmt.Errorf("authentication failed: %v", state.Err)
	default:
		return fmt.Errorf("unexpected final state %s", state.Phase)
	}
}
