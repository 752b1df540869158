package cmd

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/byxorna/fable/pkg/config"
	"github.com/byxorna/fable/pkg/model"
	"github.com/byxorna/fable/pkg/runtime"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flags = struct {
		ConfigFile string
		Directory  string
		Debug      bool
		NoMouse    bool
	}{}

	root = &cobra.Command{
		Use:   "fable",
		Short: "Fable reads illustrated stories as a book in your terminal",
		Args:  cobra.MaximumNArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			closeLog, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			// nothing to draw on; behave like `fable list`
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return printStories(cmd.Context(), os.Stdout, cfg, "", false)
			}

			m, err := model.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			defer m.Close()

			opts := []tea.ProgramOption{}
			if cfg.AltScreen {
				opts = append(opts, tea.WithAltScreen())
			}
			if cfg.Mouse {
				opts = append(opts, tea.WithMouseCellMotion())
			}

			p := tea.NewProgram(*m, opts...)
			return p.Start()
		},
	}
)

func init() {
	root.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "~/.fable.yaml", "configuration file")
	root.PersistentFlags().StringVarP(&flags.Directory, "dir", "d", "", "story directory (overrides the configuration)")
	root.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "log to a file in the runtime directory")
	root.Flags().BoolVar(&flags.NoMouse, "no-mouse", false, "disable mouse input")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if flags.Directory != "" {
		cfg.Directory = flags.Directory
	}
	if flags.NoMouse {
		cfg.Mouse = false
	}
	return cfg, nil
}

// setupLogging discards log output unless --debug or logFile asks for it,
// since the terminal belongs to the UI.
func setupLogging(cfg *config.Config) (func(), error) {
	fn := cfg.LogFile
	if fn == "" && flags.Debug {
		var err error
		fn, err = runtime.File(runtime.LogFileName)
		if err != nil {
			return nil, fmt.Errorf("unable to locate log file: %w", err)
		}
	}

	if fn == "" {
		log.SetOutput(ioutil.Discard)
		return func() {}, nil
	}

	f, err := tea.LogToFile(fn, "fable")
	if err != nil {
		return nil, fmt.Errorf("unable to log to %s: %w", fn, err)
	}
	fmt.Printf("Logging to %s\n", fn)
	return func() { f.Close() }, nil
}

func Execute() {
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
