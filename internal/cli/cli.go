// Package cli implements the taskledger command line.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskledger/internal/app"
	"taskledger/internal/config"
	"taskledger/internal/task"
)

// Run executes one command and returns the process exit code: 0 on success,
// 2 on usage errors, 3 when a task is rejected, 1 otherwise.
func Run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("taskledger", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "taskledger.yml", "path to config file (optional)")
	verbose := global.Bool("v", false, "debug logging")
	if err := global.Parse(args); err != nil {
		return 2
	}
	rest := global.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 2
	}

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	level := cfg.Log.Level
	if *verbose {
		level = "debug"
	}

	a, err := app.New(app.Options{Config: cfg, Logger: app.NewLogger(stderr, level)})
	if err != nil {
		fmt.Fprintln(stderr, "startup failed:", err)
		return 1
	}
	defer a.Close()

	ctx := context.Background()
	switch rest[0] {
	case "add":
		return cmdAdd(ctx, a, rest[1:], stdout, stderr)
	case "demo":
		return cmdDemo(ctx, a, stdout, stderr)
	default:
		printUsage(stderr)
		return 2
	}
}

func cmdAdd(ctx context.Context, a *app.App, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	title := fs.String("title", "", "task title (required)")
	description := fs.String("description", "", "task description")
	due := fs.String("due", "", "due date, YYYY-MM-DD")
	priority := fs.String("priority", "", fmt.Sprintf("one of %v", a.Manager.Priorities()))
	if err := fs.Parse(args); err != nil {
		return 2
	}

	t, err := a.Manager.AddTask(ctx, *title, *description, *due, *priority)
	if err != nil {
		fmt.Fprintln(stderr, "add failed:", err)
		var verr *task.ValidationError
		if errors.As(err, &verr) || errors.Is(err, task.ErrDuplicateTask) {
			return 3
		}
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func cmdDemo(ctx context.Context, a *app.App, stdout, stderr io.Writer) int {
	attempts, stats, err := a.RunDemo(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "demo failed:", err)
		return 1
	}
	for i, at := range attempts {
		if at.Err != nil {
			fmt.Fprintf(stdout, "%d. %q %s: %v\n", i+1, at.Title, at.DueDate, at.Err)
			continue
		}
		fmt.Fprintf(stdout, "%d. %q %s: added %s\n", i+1, at.Title, at.DueDate, at.Task.ID)
	}
	fmt.Fprintf(stdout, "added=%d rejected=%d duplicates=%d storage_failures=%d\n",
		stats.TasksAdded, stats.Rejected, stats.Duplicates, stats.StorageFailures)
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  taskledger [-config taskledger.yml] [-v] add -title T -due YYYY-MM-DD -priority P [-description D]")
	fmt.Fprintln(w, "  taskledger [-config taskledger.yml] [-v] demo")
}
