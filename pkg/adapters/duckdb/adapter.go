// Package duckdb provides a DuckDB backed catalog.
//
// The attached databases of a DuckDB connection are catalogs and their
// schemas are databases. Import the package for its side effect to
// register the "duckdb" adapter type:
//
//	import _ "github.com/leapstack-labs/sqlbind/pkg/adapters/duckdb"
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/sqlbind/pkg/adapter"
)

// Adapter implements adapter.Adapter for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// Dialect describes DuckDB's information_schema.
var Dialect = &adapter.Dialect{
	Name:          "duckdb",
	Placeholder:   adapter.QuestionPlaceholder,
	CatalogsQuery: "SELECT database_name FROM duckdb_databases() WHERE NOT internal",
	SessionQuery:  "SELECT current_database(), current_schema()",
	Rewrite:       rewriteType,
	NativeTypes:   nativeTypes,
}

var nativeTypes = map[string]string{
	"real":         "FLOAT",
	"float4":       "FLOAT",
	"float8":       "DOUBLE",
	"int1":         "TINYINT",
	"int2":         "SMALLINT",
	"int4":         "INT",
	"int8":         "BIGINT",
	"hugeint":      "DECIMAL(38, 0)",
	"bool":         "BOOLEAN",
	"text":         "STRING",
	"blob":         "BYTES",
	"timestamp_s":  "TIMESTAMP(0)",
	"timestamp_ms": "TIMESTAMP(3)",
	"timestamp_ns": "TIMESTAMP(9)",
}

// New creates a new DuckDB adapter. A nil logger discards output.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger, Dialect: Dialect}}
}

// Connect opens the database at cfg.Path (":memory:" when empty) and
// applies the extensions, settings, secrets and attachments in cfg.Params.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.DB = db
	a.Cfg = cfg

	for _, stmt := range setupStatements(params) {
		a.Logger.Debug("duckdb setup", "statement", redact(stmt))
		if err := a.Exec(ctx, stmt); err != nil {
			_ = a.Close()
			a.DB = nil
			return fmt.Errorf("duckdb setup: %w", err)
		}
	}
	return nil
}

// setupStatements renders params as statements in a stable order:
// extensions, settings, secrets, then attachments.
func setupStatements(p *Params) []string {
	var out []string
	for _, ext := range p.Extensions {
		out = append(out, "INSTALL "+ext, "LOAD "+ext)
	}
	for _, k := range sortedKeys(p.Settings) {
		out = append(out, fmt.Sprintf("SET %s = %s", k, quoteLiteral(p.Settings[k])))
	}
	for i, s := range p.Secrets {
		out = append(out, secretStatement(i, s))
	}
	for _, alias := range sortedKeys(p.Attach) {
		out = append(out, fmt.Sprintf("ATTACH %s AS %s (READ_ONLY)", quoteLiteral(p.Attach[alias]), quoteIdent(alias)))
	}
	return out
}

func secretStatement(i int, s SecretConfig) string {
	opts := []string{"TYPE " + s.Type}
	add := func(k, v string) {
		if v != "" {
			opts = append(opts, k+" "+quoteLiteral(v))
		}
	}
	if s.Provider != "" {
		opts = append(opts, "PROVIDER "+s.Provider)
	}
	add("REGION", s.Region)
	add("KEY_ID", s.KeyID)
	add("SECRET", s.Secret)
	add("ENDPOINT", s.Endpoint)
	add("URL_STYLE", s.URLStyle)
	if s.UseSSL != nil {
		opts = append(opts, fmt.Sprintf("USE_SSL %t", *s.UseSSL))
	}
	switch scope := s.Scope.(type) {
	case string:
		add("SCOPE", scope)
	case []any:
		for _, v := range scope {
			add("SCOPE", fmt.Sprint(v))
		}
	case []string:
		for _, v := range scope {
			add("SCOPE", v)
		}
	}
	return fmt.Sprintf("CREATE OR REPLACE SECRET sqlbind_secret_%d (%s)", i, strings.Join(opts, ", "))
}

var secretPattern = regexp.MustCompile(`(SECRET|KEY_ID) '(?:[^']|'')*'`)

// redact hides credentials in setup statements before logging.
func redact(stmt string) string {
	return secretPattern.ReplaceAllString(stmt, "$1 '***'")
}

// arraySuffix matches DuckDB list types such as INTEGER[].
var arraySuffix = regexp.MustCompile(`^(.+)\[\d*\]$`)

// rewriteType turns DuckDB list syntax into ARRAY<...>.
func rewriteType(native string) string {
	if m := arraySuffix.FindStringSubmatch(native); m != nil {
		inner := strings.TrimSpace(m[1])
		if mapped, ok := nativeTypes[strings.ToLower(inner)]; ok {
			inner = mapped
		}
		return "ARRAY<" + rewriteType(inner) + ">"
	}
	return native
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

var _ adapter.Adapter = (*Adapter)(nil)
