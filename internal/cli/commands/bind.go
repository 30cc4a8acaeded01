package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlbind/internal/cli/output"
	"github.com/leapstack-labs/sqlbind/pkg/operation"
	"github.com/leapstack-labs/sqlbind/pkg/parser"
)

// BindOptions holds options for the bind command.
type BindOptions struct {
	Watch bool
}

// NewBindCommand creates the bind command.
func NewBindCommand() *cobra.Command {
	opts := &BindOptions{}
	cmd := &cobra.Command{
		Use:   "bind [files...]",
		Short: "Bind SQL scripts against the catalog",
		Long: `Bind every statement of one or more SQL scripts and print the resulting
operations. Statements are separated by semicolons. Without files the script
is read from standard input.

Each script runs in its own session, so USE statements affect the statements
that follow them in the same file only. Scripts are bound concurrently.`,
		Example: `  # Bind a script
  sqlbind bind ddl.sql

  # Bind from stdin as YAML
  echo "CREATE DATABASE db1;" | sqlbind bind -o yaml

  # Re-bind whenever the scripts change
  sqlbind bind --watch ddl.sql insert.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBind(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-bind the scripts when they change")

	return cmd
}

// Script is one named source of statements.
type Script struct {
	Name string
	Text string
}

func runBind(cmd *cobra.Command, args []string, opts *BindOptions) error {
	if opts.Watch && len(args) == 0 {
		return fmt.Errorf("--watch requires at least one script file")
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	bindOnce := func(ctx context.Context) error {
		scripts, err := readScripts(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		records, err := BindScripts(ctx, cmdCtx.Workspace, scripts, cmdCtx.Logger)
		if err != nil {
			return err
		}
		if err := cmdCtx.Renderer.Operations(records); err != nil {
			return err
		}
		return failures(records)
	}

	if !opts.Watch {
		return bindOnce(cmd.Context())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rebind := func() {
		if err := bindOnce(ctx); err != nil {
			cmdCtx.Renderer.Error(err.Error())
		}
	}
	rebind()
	cmdCtx.Renderer.Println(cmdCtx.Renderer.Muted("Watching for changes. Press Ctrl+C to stop."))

	return WatchFiles(ctx, args, cmdCtx.Logger, rebind)
}

func readScripts(paths []string, stdin io.Reader) ([]Script, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []Script{{Name: "stdin", Text: string(data)}}, nil
	}

	scripts := make([]Script, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p) //nolint:gosec // path is user-provided CLI input
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		scripts = append(scripts, Script{Name: p, Text: string(data)})
	}
	return scripts, nil
}

// BindScripts binds every statement of every script. Scripts are bound
// concurrently, each in a fresh session; records keep script order.
func BindScripts(ctx context.Context, ws *Workspace, scripts []Script, logger *slog.Logger) ([]output.OperationRecord, error) {
	results := make([][]output.OperationRecord, len(scripts))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range scripts {
		g.Go(func() error {
			sess := ws.NewSession(logger.With("script", s.Name))
			for n, stmt := range parser.SplitStatements(s.Text) {
				if err := gctx.Err(); err != nil {
					return err
				}
				rec := output.OperationRecord{Source: s.Name, Index: n + 1, Statement: stmt}
				res, err := sess.Execute(gctx, stmt)
				if err != nil {
					rec.Error = err.Error()
				} else {
					rec.Kind = operation.Kind(res.Operation)
					rec.Summary = res.Operation.Summary()
				}
				results[i] = append(results[i], rec)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []output.OperationRecord
	for _, r := range results {
		records = append(records, r...)
	}
	return records, nil
}

// failures returns an error naming the failed statements, if any.
func failures(records []output.OperationRecord) error {
	var failed []string
	for _, r := range records {
		if r.Failed() {
			failed = append(failed, fmt.Sprintf("%s:%d", r.Source, r.Index))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d statements failed to bind (%s)", len(failed), len(records), strings.Join(failed, ", "))
}
