package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbind/internal/cli/output"
	"github.com/leapstack-labs/sqlbind/internal/session"
	"github.com/leapstack-labs/sqlbind/pkg/command"
	"github.com/leapstack-labs/sqlbind/pkg/operation"
	"github.com/leapstack-labs/sqlbind/pkg/parser"
)

const (
	replPrompt       = "sqlbind> "
	replContinuation = "    ...> "
	clearScreen      = "\033[H\033[2J"
)

// lineReader is the part of *readline.Instance the REPL uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive binding session",
		Long: `Start an interactive session that binds statements as you type them.

Statements end with a semicolon and may span several lines. Client commands
(HELP, CLEAR, QUIT, EXIT, SET, RESET) run without one. USE, SET and RESET
change the session; SHOW and DESCRIBE read the catalog; every other
statement prints its bound operation.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.Styles().Prompt.Render(replPrompt),
		HistoryFile:     cmdCtx.Cfg.HistoryFile,
		AutoComplete:    newCompleter(command.DefaultChain),
		InterruptPrompt: "^C",
		EOFPrompt:       "QUIT",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	start := cmdCtx.Workspace.Start
	r.Println(r.Styles().Bold.Render("sqlbind interactive session"))
	r.Println(r.Muted(fmt.Sprintf("Catalog type: %s, current database: %s.%s", cmdCtx.Cfg.Catalog.Type, start.Catalog, start.Database)))
	r.Println(r.Muted("Type HELP for commands, QUIT to exit."))
	r.Println()

	repl := &REPL{
		Session:  cmdCtx.Workspace.NewSession(cmdCtx.Logger),
		Chain:    command.DefaultChain,
		Renderer: r,
		Prompt:   r.Styles().Prompt.Render(replPrompt),
	}
	return repl.Run(cmd.Context(), rl)
}

// REPL reads statements and prints their results.
type REPL struct {
	Session  *session.Session
	Chain    command.Chain
	Renderer *output.Renderer
	Prompt   string
}

// Run reads lines until QUIT, EXIT or end of input. Input accumulates until
// a line ends with a semicolon, unless the buffer is a client command.
func (p *REPL) Run(ctx context.Context, rl lineReader) error {
	prompt := p.Prompt
	if prompt == "" {
		prompt = replPrompt
	}

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" && buf.Len() == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(line)

		input := strings.TrimSpace(buf.String())
		if !strings.HasSuffix(input, ";") {
			if _, claimed, _ := p.Chain.Recognize(input); !claimed {
				rl.SetPrompt(replContinuation)
				continue
			}
		}
		buf.Reset()
		rl.SetPrompt(prompt)

		for _, stmt := range parser.SplitStatements(input) {
			if quit := p.execute(ctx, stmt); quit {
				return nil
			}
		}
	}
}

// execute runs one statement and reports whether the client should quit.
func (p *REPL) execute(ctx context.Context, stmt string) bool {
	r := p.Renderer

	res, err := p.Session.Execute(ctx, stmt)
	if err != nil {
		r.Error("[ERROR] Could not execute SQL statement. Reason:")
		r.Error(err.Error())
		r.Println()
		return false
	}

	switch res.Operation.(type) {
	case *operation.QuitOperation:
		r.Println("Goodbye!")
		return true
	case *operation.ClearOperation:
		r.Printf("%s", clearScreen)
		return false
	case *operation.HelpOperation:
		p.printHelp()
		return false
	}

	if res.Columns != nil {
		if err := r.Table(res.Columns, res.Rows); err != nil {
			r.Error(err.Error())
		}
	} else {
		r.Success("[INFO] " + res.Operation.Summary())
	}
	r.Println()
	return false
}

func (p *REPL) printHelp() {
	r := p.Renderer
	r.Header("Client commands")
	for _, rec := range p.Chain {
		r.Printf("  %-8s %s\n", rec.Name, rec.Help)
	}
	r.Println()
	r.Header("Statements")
	r.Println("  CREATE/ALTER/DROP DATABASE, CREATE/ALTER/DROP TABLE, INSERT INTO/OVERWRITE,")
	r.Println("  USE [CATALOG], SHOW CATALOGS/DATABASES/TABLES/FUNCTIONS, SHOW CURRENT CATALOG/DATABASE,")
	r.Println("  DESCRIBE. End statements with ';'.")
	r.Println()
}

// newCompleter completes client command names and statement keywords.
func newCompleter(chain command.Chain) *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(chain)+8)
	for _, name := range chain.Names() {
		items = append(items, readline.PcItem(name))
	}
	items = append(items,
		readline.PcItem("EXIT"),
		readline.PcItem("CREATE", readline.PcItem("DATABASE"), readline.PcItem("TABLE")),
		readline.PcItem("ALTER", readline.PcItem("DATABASE"), readline.PcItem("TABLE")),
		readline.PcItem("DROP", readline.PcItem("DATABASE"), readline.PcItem("TABLE")),
		readline.PcItem("INSERT", readline.PcItem("INTO"), readline.PcItem("OVERWRITE")),
		readline.PcItem("USE", readline.PcItem("CATALOG")),
		readline.PcItem("SHOW",
			readline.PcItem("CATALOGS"),
			readline.PcItem("DATABASES"),
			readline.PcItem("TABLES"),
			readline.PcItem("FUNCTIONS"),
			readline.PcItem("CURRENT", readline.PcItem("CATALOG"), readline.PcItem("DATABASE")),
		),
		readline.PcItem("DESCRIBE"),
	)
	return readline.NewPrefixCompleter(items...)
}
