package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqlbind/pkg/typemap"
)

// Snapshot is the YAML description of catalog contents.
//
//	catalogs:
//	  - name: cat1
//	    databases:
//	      - name: db1
//	        comment: db1_comment
//	        tables:
//	          - name: tb1
//	            columns:
//	              - {name: a, type: BIGINT}
//	              - {name: b, type: BIGINT, expr: a + 1}
type Snapshot struct {
	Catalogs []SnapshotCatalog `yaml:"catalogs"`
}

// SnapshotCatalog is one catalog of a Snapshot.
type SnapshotCatalog struct {
	Name      string             `yaml:"name"`
	Databases []SnapshotDatabase `yaml:"databases,omitempty"`
}

// SnapshotDatabase is one database of a Snapshot.
type SnapshotDatabase struct {
	Name    string            `yaml:"name"`
	Comment *string           `yaml:"comment,omitempty"`
	Options map[string]string `yaml:"options,omitempty"`
	Tables  []SnapshotTable   `yaml:"tables,omitempty"`
}

// SnapshotTable is one table of a Snapshot.
type SnapshotTable struct {
	Name          string            `yaml:"name"`
	Comment       string            `yaml:"comment,omitempty"`
	Columns       []SnapshotColumn  `yaml:"columns"`
	PartitionKeys []string          `yaml:"partition_keys,omitempty"`
	PrimaryKey    []string          `yaml:"primary_key,omitempty"`
	Options       map[string]string `yaml:"options,omitempty"`
}

// SnapshotColumn is one column of a SnapshotTable. Type is SQL type text.
type SnapshotColumn struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Expr    string `yaml:"expr,omitempty"`
	Comment string `yaml:"comment,omitempty"`
}

// LoadSnapshot decodes a YAML snapshot.
func LoadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return &s, nil
		}
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// LoadSnapshotFile decodes the YAML snapshot at path.
func LoadSnapshotFile(path string) (*Snapshot, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided CLI input
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return LoadSnapshot(f)
}

// NewMemoryFromSnapshot returns a Memory seeded with the snapshot.
func NewMemoryFromSnapshot(ctx context.Context, s *Snapshot) (*Memory, error) {
	m := NewMemory()
	if err := s.Apply(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Apply creates every object of the snapshot in w. Existing catalogs are
// reused; existing databases are skipped so the builtin default database
// can be listed in a snapshot.
func (s *Snapshot) Apply(ctx context.Context, w Writer) error {
	for _, c := range s.Catalogs {
		if c.Name == "" {
			return fmt.Errorf("snapshot: catalog without name")
		}
		if err := w.CreateCatalog(ctx, c.Name); err != nil {
			return fmt.Errorf("create catalog %s: %w", c.Name, err)
		}
		for _, d := range c.Databases {
			def := DatabaseDefinition{Comment: d.Comment, Options: cloneOptions(d.Options)}
			if err := w.CreateDatabase(ctx, c.Name, d.Name, def); err != nil {
				var exists *ExistsError
				if !errors.As(err, &exists) {
					return fmt.Errorf("create database %s.%s: %w", c.Name, d.Name, err)
				}
			}
			for _, t := range d.Tables {
				def, err := t.definition()
				if err != nil {
					return fmt.Errorf("table %s.%s.%s: %w", c.Name, d.Name, t.Name, err)
				}
				if err := w.CreateTable(ctx, NewIdentifier(c.Name, d.Name, t.Name), def); err != nil {
					return fmt.Errorf("create table %s.%s.%s: %w", c.Name, d.Name, t.Name, err)
				}
			}
		}
	}
	return nil
}

// definition converts the table, parsing column types.
func (t SnapshotTable) definition() (TableDefinition, error) {
	def := TableDefinition{
		Comment:       t.Comment,
		PartitionKeys: t.PartitionKeys,
		PrimaryKey:    t.PrimaryKey,
		Options:       cloneOptions(t.Options),
	}
	for _, c := range t.Columns {
		dt, err := typemap.Parse(c.Type)
		if err != nil {
			return TableDefinition{}, fmt.Errorf("column %s: %w", c.Name, err)
		}
		def.Columns = append(def.Columns, Column{Name: c.Name, Type: dt, Expr: c.Expr, Comment: c.Comment})
	}
	return def, nil
}

// Export builds a Snapshot of everything src lists.
func Export(ctx context.Context, src interface {
	Catalog
	Lister
}) (*Snapshot, error) {
	catalogs, err := src.ListCatalogs(ctx)
	if err != nil {
		return nil, err
	}
	s := &Snapshot{}
	for _, c := range catalogs {
		sc := SnapshotCatalog{Name: c}
		dbs, err := src.ListDatabases(ctx, c)
		if err != nil {
			return nil, err
		}
		for _, d := range dbs {
			sd, err := exportDatabase(ctx, src, c, d)
			if err != nil {
				return nil, err
			}
			sc.Databases = append(sc.Databases, sd)
		}
		s.Catalogs = append(s.Catalogs, sc)
	}
	return s, nil
}

func exportDatabase(ctx context.Context, src interface {
	Catalog
	Lister
}, catalog, database string) (SnapshotDatabase, error) {
	def, err := src.GetDatabase(ctx, catalog, database)
	if err != nil {
		return SnapshotDatabase{}, err
	}
	sd := SnapshotDatabase{Name: database}
	if def != nil {
		sd.Comment = def.Comment
		if len(def.Options) > 0 {
			sd.Options = def.Options
		}
	}
	tables, err := src.ListTables(ctx, catalog, database)
	if err != nil {
		return SnapshotDatabase{}, err
	}
	for _, name := range tables {
		t, err := src.GetTable(ctx, NewIdentifier(catalog, database, name))
		if err != nil {
			return SnapshotDatabase{}, err
		}
		if t == nil {
			continue
		}
		st := SnapshotTable{
			Name:          name,
			Comment:       t.Comment,
			PartitionKeys: t.PartitionKeys,
			PrimaryKey:    t.PrimaryKey,
		}
		if len(t.Options) > 0 {
			st.Options = t.Options
		}
		for _, c := range t.Columns {
			st.Columns = append(st.Columns, SnapshotColumn{Name: c.Name, Type: c.Type.String(), Expr: c.Expr, Comment: c.Comment})
		}
		sd.Tables = append(sd.Tables, st)
	}
	return sd, nil
}

// Write encodes the snapshot as YAML.
func (s *Snapshot) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
