package main

import (
	"fmt"
	"io"
	"os"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WillyV3/todobi/internal/store"
	"github.com/WillyV3/todobi/internal/todo"
)

// Version is set at build time
var Version = "dev"

// skipEngine marks commands that run without opening the task store.
const skipEngine = "skip-engine"

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	v      *viper.Viper
	cfg    *Config
	logger *log.Logger
	store  store.Store
	engine *todo.Engine
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the CLI with the given arguments and IO streams and returns
// the process exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, v: viper.New()}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todobi",
		Short:   "A deadline-ordered task list",
		Long:    "todobi keeps a task list with priorities, tags and deadlines. Run without arguments for the interactive view.",
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default "+defaultConfigPath()+")")
	flags.String("store", "", "store kind: file, sqlite or memory")
	flags.String("store-path", "", "store file location")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("timezone", "", "IANA timezone used for deadline checks")

	_ = a.v.BindPFlag("store.kind", flags.Lookup("store"))
	_ = a.v.BindPFlag("store.path", flags.Lookup("store-path"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("timezone", flags.Lookup("timezone"))

	cmd.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newDetailsCmd(a),
		newTagCmd(a),
		newUntagCmd(a),
		newColorsCmd(a),
		newExportCmd(a),
		newSeedCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

func (a *app) open(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := LoadConfig(a.v, path)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cfg.Log, a.stderr)

	if cmd.Annotations[skipEngine] == "true" {
		return nil
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	s, err := store.Open(store.Kind(cfg.Store.Kind), cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.store = s
	a.engine = todo.New(s, todo.Options{Logger: a.logger, Location: loc})
	a.logger.Debug("store opened", "kind", cfg.Store.Kind, "tasks", a.engine.Len())
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// saved reports the engine's last persistence error, if any.
func (a *app) saved() error {
	if a.engine == nil {
		return nil
	}
	return a.engine.Err()
}

func (a *app) runTUI() error {
	if f, err := openLogFile(a.cfg.Log.File); err == nil {
		a.logger.SetOutput(f)
		defer f.Close()
		defer a.logger.SetOutput(a.stderr)
	} else {
		a.logger.Warn("logging to stderr", "err", err)
	}

	p := tea.NewProgram(NewModel(a.engine), tea.WithAltScreen(), tea.WithInput(a.stdin), tea.WithOutput(a.stdout))
	if _, err := p.Run(); err != nil {
		return err
	}
	return a.saved()
}
