package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gravitrone/coursedesk/internal/api"
	"github.com/gravitrone/coursedesk/internal/config"
)

// LoginOptions are the flags of `coursedesk login`.
type LoginOptions struct {
	BaseURL string
	Token   string
}

// RunLogin stores a bearer token in the config file. Without a token it
// prompts for username and password and exchanges them at the server.
func RunLogin(ctx context.Context, in io.Reader, out io.Writer, opts LoginOptions) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}
	if url := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); url != "" {
		cfg.BaseURL = url
	}

	token := strings.TrimSpace(opts.Token)
	if token == "" {
		resp, err := promptLogin(ctx, in, out, api.NewClient(cfg.BaseURL, "", cfg.Timeout))
		if err != nil {
			return err
		}
		token = resp.Token
		cfg.Username = resp.Username
	}
	cfg.Token = token

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if cfg.Username != "" {
		fmt.Fprintf(out, "logged in as %s\n", cfg.Username)
	} else {
		fmt.Fprintf(out, "token saved for %s\n", cfg.BaseURL)
	}
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

func promptLogin(ctx context.Context, in io.Reader, out io.Writer, client *api.Client) (*api.LoginResponse, error) {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	fmt.Fprint(out, "password: ")
	password, err := readPassword(in, reader)
	fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}

	resp, err := client.Login(ctx, api.LoginInput{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.Username == "" {
		resp.Username = username
	}
	return resp, nil
}

// readPassword reads without echo from a terminal, or one line otherwise.
func readPassword(in io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		return string(b), err
	}
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// LoginCmd returns the `coursedesk login` command.
func LoginCmd() *cobra.Command {
	var opts LoginOptions
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a course management server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunLogin(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.BaseURL, "url", "", "server base URL (default "+config.DefaultBaseURL+")")
	cmd.Flags().StringVar(&opts.Token, "token", "", "bearer token; skips the username/password prompt")
	return cmd
}
