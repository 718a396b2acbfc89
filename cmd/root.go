package cmd

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/cazelabs/cazechat/internal/app"
	"github.com/cazelabs/cazechat/internal/config"
	"github.com/cazelabs/cazechat/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	endpointFlag          string
	backendHostFlag       string
	timeoutFlag           time.Duration
	userIDFlag            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "cazechat",
	Short: "Terminal chat client for the Caze Labs assistant",
	Long: `cazechat is a terminal chat client for the Caze Labs assistant backend.
Conversations live in the sidebar; prompts and file attachments are sent to
the backend's /chat/ endpoint and replies appear in the conversation they were
asked from.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	pf.BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	pf.StringVar(&configPath, "config", "", "Config file (default ~/.cazechat/config.json)")
	pf.StringVar(&endpointFlag, "endpoint", "", "Chat endpoint URL for this run")
	pf.StringVar(&backendHostFlag, "backend-host", "", "Origin that server file links resolve against")
	pf.DurationVar(&timeoutFlag, "timeout", 0, "Per-request timeout, e.g. 90s (0 waits forever)")
	pf.StringVar(&userIDFlag, "user-id", "", "User id sent with submissions (random per run by default)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("cazechat %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("cazechat %s\n", version)
}

// loadConfig reads the config file and applies the flags the user set. The
// overrides only live in memory unless the settings modal saves them.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.SetEndpoint(endpointFlag)
	}
	if flags.Changed("backend-host") {
		cfg.SetBackendHost(backendHostFlag)
	}
	if flags.Changed("timeout") {
		cfg.SetRequestTimeout(timeoutFlag)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	ctx := cmd.Context()
	m := app.New(cfg, version, app.WithContext(ctx), app.WithUserID(userIDFlag))
	p := tea.NewProgram(m, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
