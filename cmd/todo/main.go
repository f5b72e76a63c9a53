package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"todo/internal/agenda"
	"todo/internal/config"
	"todo/internal/dates"
	"todo/internal/editor"
	"todo/internal/logging"
	"todo/internal/parser"
	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/ui"
)

// app carries what every command needs for one invocation. now is read once.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	now    time.Time

	cfg    config.Config
	store  *storage.Store
	logger *log.Logger

	// prompt and edit are swapped out in tests.
	prompt func(category string) (ui.CreateResult, error)
	edit   func(ctx context.Context, path string) error
}

func main() {
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
		now:    time.Now(),
	}
	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "todo <command>",
		Short: "Plain-text task lists and daily agenda",
		Long: `todo reads one plain-text file per category from the todo directory
($TODO_DIRECTORY, default ~/.todo) and shows them as a prioritized list
or as the agenda for a day.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("missing command")
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.AddCommand(agendaCmd(a))
	root.AddCommand(listCmd(a))
	root.AddCommand(openCmd(a))
	root.SetHelpCommand(helpCmd(root))
	return root
}

func (a *app) setup() error {
	path := a.getenv(config.EnvConfig)
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Apply(a.getenv)
	a.cfg = cfg
	a.logger = logging.New(a.stderr, cfg.LogLevel)

	dir, err := cfg.TodoDir()
	if err != nil {
		return err
	}
	a.store, err = storage.Open(dir, cfg.Extension)
	if err != nil {
		return err
	}
	a.logger.Debug("using todo directory", "dir", dir, "config", path)

	if a.prompt == nil {
		a.prompt = func(category string) (ui.CreateResult, error) {
			return ui.PromptCreate(category, a.stdin, a.stdout)
		}
	}
	if a.edit == nil {
		a.edit = func(ctx context.Context, path string) error {
			return editor.Open(ctx, a.cfg.Editor, path, a.stdin, a.stdout, a.stderr)
		}
	}
	return nil
}

// loadAll parses every category and logs the warnings found on the way.
func (a *app) loadAll(ctx context.Context) ([]parser.Result, error) {
	results, err := a.store.LoadAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	logging.Warnings(a.logger, results...)
	return results, nil
}

func agendaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "agenda [date]",
		Aliases: []string{"a"},
		Short:   "Show the agenda for today, a date (1 Jan 2021) or a day offset (-1, 2)",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := a.now
			if len(args) == 1 {
				d, err := dates.ParseRelative(args[0], a.now)
				if err != nil {
					return err
				}
				date = d
			}
			cmd.SilenceUsage = true

			results, err := a.loadAll(cmd.Context())
			if err != nil {
				return err
			}
			var tasks []task.Task
			for _, res := range results {
				tasks = append(tasks, res.Tasks...)
			}
			view := agenda.Build(tasks, date, a.now, agenda.Options{WarningDays: a.cfg.DeadlineWarningDays})
			ui.NewPrinter(cmd.OutOrStdout(), a.now).Agenda(view)
			return nil
		},
	}
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list [category]",
		Aliases: []string{"ls"},
		Short:   "List the tasks of one category, or of all of them",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p := ui.NewPrinter(cmd.OutOrStdout(), a.now)

			if len(args) == 1 {
				res, err := a.store.Load(args[0])
				if err != nil {
					return err
				}
				logging.Warnings(a.logger, res)
				p.Tasks(res.Tasks)
				return nil
			}

			results, err := a.loadAll(cmd.Context())
			if err != nil {
				return err
			}
			p.Categories(results)
			return nil
		},
	}
}

func openCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "open <category>",
		Aliases: []string{"o"},
		Short:   "Edit a category file, offering to create it if missing",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			category := args[0]

			if !a.store.Exists(category) {
				choice, err := a.prompt(category)
				if err != nil {
					return fmt.Errorf("prompt: %w", err)
				}
				if !choice.Create {
					fmt.Fprintf(cmd.OutOrStdout(), "Category %q not created\n", category)
					return nil
				}
				if err := a.store.Create(category, choice.Summary); err != nil {
					return err
				}
				a.logger.Info("created category", "category", category, "path", a.store.Path(category))
			}
			return a.edit(cmd.Context(), a.store.Path(category))
		},
	}
}

func helpCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:     "help [command]",
		Aliases: []string{"h"},
		Short:   "Show help for a command",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := root.Find(args)
			if err != nil || target == nil {
				target = root
			}
			return target.Help()
		},
	}
}
