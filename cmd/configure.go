package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tradeplumber/oa/internal/auth"
	"github.com/tradeplumber/oa/internal/config"
	"github.com/tradeplumber/oa/internal/keyring"
)

// passwordReader abstracts terminal password input for testing.
type passwordReader interface {
	ReadPassword() (string, error)
	IsTerminal() bool
}

// terminalReader reads passwords from the terminal using golang.org/x/term.
type terminalReader struct {
	fd int
}

// newTerminalReader creates a reader for the given file descriptor.
func newTerminalReader(fd int) *terminalReader {
	return &terminalReader{fd: fd}
}

func (r *terminalReader) ReadPassword() (string, error) {
	password, err := term.ReadPassword(r.fd)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func (r *terminalReader) IsTerminal() bool {
	return term.IsTerminal(r.fd)
}

// prompter abstracts interactive input for testing.
type prompter interface {
	SelectOption(options []string) (int, error)
	ReadLine(prompt string) (string, error)
}

// terminalPrompter implements prompter using stdin.
type terminalPrompter struct {
	reader io.Reader
	writer io.Writer
}

func newTerminalPrompter(r io.Reader, w io.Writer) *terminalPrompter {
	return &terminalPrompter{reader: r, writer: w}
}

func (p *terminalPrompter) SelectOption(options []string) (int, error) {
	scanner := bufio.NewScanner(p.reader)
	for {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("no input")
		}
		input := strings.TrimSpace(scanner.Text())
		idx, err := strconv.Atoi(input)
		if err != nil || idx < 1 || idx > len(options) {
			_, _ = fmt.Fprintf(p.writer, "Please enter a number between 1 and %d: ", len(options))
			continue
		}
		return idx - 1, nil // Convert to 0-indexed
	}
}

func (p *terminalPrompter) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.writer, prompt)
	scanner := bufio.NewScanner(p.reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// configureOptions holds dependencies for the configure command.
// This allows for dependency injection in tests.
type configureOptions struct {
	configPath     string
	store          keyring.Store
	passwordReader passwordReader
	prompt         prompter
}

// newConfigureCmd creates the configure command with the given options.
func newConfigureCmd(opts configureOptions) *cobra.Command {
	var host string

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure CLI credentials",
		Long: `Configure the CLI with your OpenAlgo server and API key.

You will be prompted to enter your API key securely. The key is verified
against the server before anything is stored. Get your API key from the
OpenAlgo web dashboard (Profile -> API Key).

Example:
  oa configure
  oa configure --host http://127.0.0.1:5000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, opts, host)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "OpenAlgo server URL (skips the host prompt)")

	// Don't show usage info on validation errors - just show the error
	cmd.SilenceUsage = true

	return cmd
}

// reconfigureMenuOptions defines the menu options when already configured.
var reconfigureMenuOptions = []string{
	"Configure new API key",
	"Change server host",
	"View current configuration",
	"Clear API key",
}

func runConfigure(cmd *cobra.Command, opts configureOptions, host string) error {
	// Verify we're running in an interactive terminal
	if !opts.passwordReader.IsTerminal() {
		return fmt.Errorf("configure requires an interactive terminal\nRun this command directly in your terminal (not piped or in a script)")
	}

	// Check if already configured
	_, err := opts.store.Get(keyring.ServiceName, keyring.KeyAPIKey)
	alreadyConfigured := err == nil

	if alreadyConfigured && host == "" {
		return runReconfigureMenu(cmd, opts)
	}

	return runInitialSetup(cmd, opts, host)
}

// runReconfigureMenu shows the reconfigure menu when already configured.
func runReconfigureMenu(cmd *cobra.Command, opts configureOptions) error {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "CLI is already configured. What would you like to do?")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for i, opt := range reconfigureMenuOptions {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, opt)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	_, _ = fmt.Fprint(cmd.OutOrStdout(), "Select option: ")

	choice, err := opts.prompt.SelectOption(reconfigureMenuOptions)
	if err != nil {
		return fmt.Errorf("failed to read selection: %w", err)
	}

	switch choice {
	case 0: // Configure new API key
		return runInitialSetup(cmd, opts, "")
	case 1: // Change server host
		return runChangeHost(cmd, opts)
	case 2: // View current configuration
		return runViewConfiguration(cmd, opts)
	case 3: // Clear API key
		return runClearKey(cmd, opts)
	default:
		return fmt.Errorf("invalid selection")
	}
}

// runInitialSetup prompts for host and API key, verifies the key against
// the server, and stores both.
func runInitialSetup(cmd *cobra.Command, opts configureOptions, host string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	if host == "" {
		entered, err := opts.prompt.ReadLine(fmt.Sprintf("OpenAlgo server URL [%s]: ", cfg.Host))
		if err != nil {
			return fmt.Errorf("failed to read host: %w", err)
		}
		if entered != "" {
			host = entered
		} else {
			host = cfg.Host
		}
	}
	host = strings.TrimSuffix(host, "/")

	// Prompt for API key
	_, _ = fmt.Fprint(cmd.OutOrStdout(), "Enter your API key: ")
	apiKey, err := opts.passwordReader.ReadPassword()
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout()) // Print newline after hidden input

	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	// Verify the key against the server before storing anything
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := auth.Verify(ctx, host, apiKey); err != nil {
		return fmt.Errorf("failed to verify API key: %w", err)
	}

	if err := opts.store.Set(keyring.ServiceName, keyring.KeyAPIKey, apiKey); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}

	cfg.Host = host
	if err := config.Save(opts.configPath, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved successfully!")
	return nil
}

// runChangeHost updates the server host without touching the stored key.
func runChangeHost(cmd *cobra.Command, opts configureOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	entered, err := opts.prompt.ReadLine(fmt.Sprintf("OpenAlgo server URL [%s]: ", cfg.Host))
	if err != nil {
		return fmt.Errorf("failed to read host: %w", err)
	}
	if entered == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Host unchanged.")
		return nil
	}

	cfg.Host = strings.TrimSuffix(entered, "/")
	if err := config.Save(opts.configPath, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Server host set to: %s\n", cfg.Host)
	return nil
}

// runViewConfiguration displays the current configuration.
func runViewConfiguration(cmd *cobra.Command, opts configureOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Current Configuration:")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "----------------------")

	// Check if key is configured
	_, err = opts.store.Get(keyring.ServiceName, keyring.KeyAPIKey)
	if err == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API key: Configured")
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API key: Not configured")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Server host: %s\n", cfg.Host)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exchange: %s\n", cfg.Exchange)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Product: %s (options: %s)\n", cfg.Product, cfg.OptionsProduct)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Strategy tag: %s\n", cfg.Strategy)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Trading enabled: %t\n", cfg.TradingEnabled)

	return nil
}

// runClearKey removes the stored API key.
func runClearKey(cmd *cobra.Command, opts configureOptions) error {
	if err := opts.store.Delete(keyring.ServiceName, keyring.KeyAPIKey); err != nil {
		return fmt.Errorf("failed to clear API key: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API key cleared successfully.")
	return nil
}

func init() {
	// Create configure command with production dependencies
	configureCmd := newConfigureCmd(configureOptions{
		configPath:     config.Path(),
		store:          keyring.NewEnvStore(keyring.NewSystemStore()),
		passwordReader: newTerminalReader(int(os.Stdin.Fd())),
		prompt:         newTerminalPrompter(os.Stdin, os.Stdout),
	})
	rootCmd.AddCommand(configureCmd)
}
