package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/cellvim/internal/config"
	"github.com/zjrosen/cellvim/internal/log"
	"github.com/zjrosen/cellvim/internal/ui/gridview"
	"github.com/zjrosen/cellvim/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "cellvim <file>",
	Short:   "A vim-modal editor for tabular text files",
	Long:    `A terminal editor for TSV and CSV files with vim-style modal editing: counts, multi-key sequences, visual block selection, registers, and dot-repeat over a grid of cells.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runApp,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available theme presets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range styles.PresetNames() {
			fmt.Printf("%-18s %s\n", name, styles.Presets[name].Description)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/cellvim/config.yaml)")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable reloading the grid when the file changes on disk")
	rootCmd.Flags().String("debug", "",
		"write a debug log to the given file")

	rootCmd.AddCommand(themesCmd)
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("sequence_timeout_ms", defaults.SequenceTimeoutMs)
	viper.SetDefault("history_depth", defaults.HistoryDepth)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_row_numbers", defaults.UI.ShowRowNumbers)
	viper.SetDefault("ui.column_separator", defaults.UI.ColumnSeparator)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .cellvim/config.yaml (current directory)
		// 2. ~/.config/cellvim/config.yaml (user config)
		if _, err := os.Stat(".cellvim/config.yaml"); err == nil {
			viper.SetConfigFile(".cellvim/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "cellvim"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default in the user dir
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "cellvim", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debugPath, _ := cmd.Flags().GetString("debug"); debugPath != "" {
		cleanup, err := log.Init(debugPath)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	// Handle --no-auto-reload flag (negated logic)
	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.AutoReload = false
	}

	model, err := gridview.New(args[0], cfg)
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()

	// Clean up watcher resources
	model.Close()

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
