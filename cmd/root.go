// Package cmd implements the CLI command structure for taskboard.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskboard/internal/api"
	"github.com/nibzard/taskboard/internal/board"
	"github.com/nibzard/taskboard/internal/config"
	"github.com/nibzard/taskboard/internal/devserver"
	"github.com/nibzard/taskboard/internal/logging"
	"github.com/nibzard/taskboard/internal/notify"
	"github.com/nibzard/taskboard/internal/output"
	"github.com/nibzard/taskboard/internal/task"
	"github.com/nibzard/taskboard/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the taskboard CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(ctx, cfg, remainingArgs)
	case "add":
		return addCommand(ctx, cfg, remainingArgs)
	case "edit":
		return editCommand(ctx, cfg, remainingArgs)
	case "rm", "delete":
		return rmCommand(ctx, cfg, remainingArgs)
	case "import":
		return importCommand(ctx, cfg, remainingArgs)
	case "serve":
		return serveCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "logs":
		return logsCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// cliLogger logs to stderr so command output stays clean on stdout.
func cliLogger(cfg *config.Config) *log.Logger {
	return logging.NewLoggerFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

func newBoard(cfg *config.Config, logger *log.Logger) *board.Board {
	client := api.New(cfg.APIURL, api.WithTimeout(cfg.RequestTimeout()))
	return board.New(client, board.WithLogger(logger))
}

// tuiCommand launches the interactive board. Logs go to a per-run file
// because the terminal belongs to the UI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	runLog, err := logging.NewRunLogger(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("creating run log: %w", err)
	}
	defer runLog.Close()

	logger := logging.NewLoggerFromConfig(runLog.Writer(), cfg.LogLevel, cfg.LogFormat, true, cfg.LogCaller)
	logger.Info("starting board", "api_url", cfg.APIURL, "run_id", runLog.RunID)
	if !ui.IsTTY(stdout) {
		logger.Error("stdout is not a terminal")
		return fmt.Errorf("tui requires a TTY")
	}

	b := newBoard(cfg, logger)
	return ui.RunTUI(ctx, b,
		ui.WithToastDuration(cfg.ToastDuration()),
		ui.WithLogger(logger.WithPrefix("ui")),
	)
}

// lsCommand prints the task collection grouped by category.
func lsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", string(output.FormatText), "Output format (text, json, yaml)")
	verbose := fs.Bool("v", false, "Show more details")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	f, err := output.ParseFormat(*format)
	if err != nil {
		return err
	}

	b := newBoard(cfg, cliLogger(cfg))
	if err := b.Load(ctx); err != nil {
		return userError(err, board.FallbackLoad)
	}
	return output.Render(stdout, f, b.Store.Tasks(), output.Options{Verbose: *verbose})
}

// addCommand creates a task. The server assigns its category.
func addCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	title := fs.String("title", "", "Task title (required)")
	description := fs.String("description", "", "Task details")
	estimate := fs.String("estimate", "", "Estimated time in minutes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// A bare argument is taken as the title.
	if *title == "" && fs.NArg() > 0 {
		*title = strings.Join(fs.Args(), " ")
	} else if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	minutes, err := task.ParseEstimatedTime(*estimate)
	if err != nil {
		return err
	}

	b := newBoard(cfg, cliLogger(cfg))
	in := task.CreateInput{Title: *title, Description: *description, EstimatedTime: minutes}
	if _, err := b.Create(ctx, in); err != nil {
		return userError(err, board.FallbackCreate)
	}
	printToasts(b)
	if tasks := b.Store.Tasks(); len(tasks) > 0 {
		t := tasks[0]
		fmt.Fprintf(stdout, "%s [%s] %s (%s)\n", output.CategoryIcon(t.Category), t.ID, t.Title, t.Category)
	}
	return nil
}

// editCommand applies a partial update. Only flags given on the command
// line are sent.
func editCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard edit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	title := fs.String("title", "", "New title")
	description := fs.String("description", "", "New details")
	category := fs.String("category", "", "New category (work, personal, urgent)")
	estimate := fs.String("estimate", "", "New estimated time in minutes")
	id, rest := splitID(args)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if id == "" && fs.NArg() > 0 {
		id = fs.Arg(0)
	}
	if id == "" {
		return errors.New("edit requires a task id")
	}

	var in task.UpdateInput
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			in.Title = task.String(*title)
		case "description":
			in.Description = task.String(*description)
		case "category":
			c := task.Category(strings.ToLower(strings.TrimSpace(*category)))
			in.Category = &c
		case "estimate":
			minutes, err := task.ParseEstimatedTime(*estimate)
			if err != nil {
				parseErr = err
				return
			}
			in.EstimatedTime = minutes
		}
	})
	if parseErr != nil {
		return parseErr
	}
	if in.IsEmpty() {
		return errors.New("nothing to update: pass at least one of --title, --description, --category, --estimate")
	}

	b := newBoard(cfg, cliLogger(cfg))
	if _, err := b.Update(ctx, id, in); err != nil {
		return userError(err, board.FallbackUpdate)
	}
	printToasts(b)
	return nil
}

// rmCommand deletes a task after confirmation.
func rmCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard rm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	fs.BoolVar(yes, "y", false, "Skip the confirmation prompt")
	id, rest := splitID(args)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if id == "" && fs.NArg() > 0 {
		id = fs.Arg(0)
	}
	if id == "" {
		return errors.New("rm requires a task id")
	}

	b := newBoard(cfg, cliLogger(cfg))
	b.RequestDelete(id)
	if !*yes && !confirmPrompt(fmt.Sprintf("Delete task %s? This action cannot be undone. [y/N] ", id)) {
		b.CancelDelete()
		fmt.Fprintln(stdout, "Cancelled.")
		return nil
	}
	if err := b.ConfirmDelete(ctx); err != nil {
		return userError(err, board.FallbackDelete)
	}
	printToasts(b)
	return nil
}

// serveCommand runs the development task service.
func serveCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", cfg.ServeAddr, "Listen address")
	strategy := fs.String("categorizer", cfg.Categorizer, "Categorizer (keyword, pattern)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	logger := cliLogger(cfg).WithPrefix("devserver")
	srv := devserver.New(
		devserver.WithCategorizer(devserver.NewCategorizer(*strategy)),
		devserver.WithLogger(logger),
	)
	logger.Info("starting dev server", "categorizer", *strategy)
	return srv.Run(ctx, *addr)
}

// configCommand prints the effective configuration and where each value
// came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("taskboard config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	if path := cws.GetConfigFile(); path != "" {
		fmt.Fprintf(stdout, "Config file: %s\n\n", path)
	} else {
		fmt.Fprintln(stdout, "Config file: (none)")
		fmt.Fprintln(stdout)
	}
	for _, field := range config.Fields() {
		fmt.Fprintf(stdout, "%-24s %-28v (%s)\n", field, cws.Config.Value(field), cws.Sources[field])
	}
	return nil
}

// logsCommand lists run logs written by the interactive board.
func logsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard logs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	latest := fs.Bool("latest", false, "Print only the newest log path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	paths, err := logging.FindRunLogs(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding run logs: %w", err)
	}
	if len(paths) == 0 {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}
	if *latest {
		paths = paths[:1]
	}
	for _, p := range paths {
		fmt.Fprintln(stdout, p)
	}
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "taskboard version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskboard - Smart todo list with automatic categorization")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskboard [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                   Launch the interactive board (default command)")
	fmt.Fprintln(w, "  ls [-format f] [-v]   List tasks grouped by category")
	fmt.Fprintln(w, "  add <title>           Create a task (-description, -estimate)")
	fmt.Fprintln(w, "  edit <id>             Update a task (-title, -description, -category, -estimate)")
	fmt.Fprintln(w, "  rm <id> [-yes]        Delete a task after confirmation")
	fmt.Fprintln(w, "  import <file>         Create tasks from a JSON or YAML list (-workers, -fail-fast)")
	fmt.Fprintln(w, "  serve                 Run the development task service")
	fmt.Fprintln(w, "  config [-example]     Show effective configuration")
	fmt.Fprintln(w, "  logs [-latest]        List run logs")
	fmt.Fprintln(w, "  version               Show version information")
	fmt.Fprintln(w, "  help                  Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// splitID pulls a leading positional id off args so flags may follow it.
func splitID(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

// userError turns a board failure into the message shown to the user.
// Validation failures already read well on their own.
func userError(err error, fallback string) error {
	if _, ok := task.IsValidation(err); ok {
		return err
	}
	return &commandError{msg: task.UserMessage(err, fallback), err: err}
}

// commandError prints as the user-facing message and unwraps to the cause.
type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string { return e.msg }

func (e *commandError) Unwrap() error { return e.err }

// printToasts writes the board's pending notifications.
func printToasts(b *board.Board) {
	for _, msg := range b.Toasts.Messages() {
		switch msg.Kind {
		case notify.KindError:
			fmt.Fprintf(stderr, "✗ %s\n", msg.Text)
		default:
			fmt.Fprintf(stdout, "✓ %s\n", msg.Text)
		}
	}
}

func confirmPrompt(question string) bool {
	fmt.Fprint(stdout, question)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
