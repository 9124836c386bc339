package db

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/femora/migrations"
	"gorm.io/gorm"
)

type dialect string

const (
	dialectSQLite   dialect = "sqlite"
	dialectPostgres dialect = "postgres"
)

var addColumnPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+"?(\w+)"?\s+ADD\s+COLUMN\s+(?:IF\s+NOT\s+EXISTS\s+)?"?(\w+)"?`)

type migration struct {
	Version    string
	Name       string
	Statements []string
}

// migrator applies the forward-only SQL files of one dialect directory and
// records each applied version in schema_migrations.
type migrator struct {
	database *gorm.DB
	dialect  dialect
	source   fs.FS
}

func newMigrator(database *gorm.DB, sqlDialect dialect) *migrator {
	return &migrator{database: database, dialect: sqlDialect, source: embeddedmigrations.Files}
}

func (m *migrator) Up() error {
	if err := m.ensureVersionTable(); err != nil {
		return err
	}

	all, err := m.migrations()
	if err != nil {
		return err
	}
	applied, err := m.appliedVersions()
	if err != nil {
		return err
	}

	for _, next := range all {
		if applied[next.Version] {
			continue
		}
		if err := m.apply(next); err != nil {
			return err
		}
	}
	return nil
}

func (m *migrator) ensureVersionTable() error {
	timestampType := "DATETIME"
	if m.dialect == dialectPostgres {
		timestampType = "TIMESTAMPTZ"
	}
	ddl := `CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at ` + timestampType + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
	if err := m.database.Exec(ddl).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

// migrations lists "<digits>_<name>.sql" files in ascending numeric order.
func (m *migrator) migrations() ([]migration, error) {
	files, err := fs.Glob(m.source, path.Join(string(m.dialect), "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("list %s migrations: %w", m.dialect, err)
	}

	found := make([]migration, 0, len(files))
	numbers := make(map[int]string, len(files))
	for _, file := range files {
		name := path.Base(file)
		version, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		number, err := strconv.Atoi(version)
		if err != nil {
			continue
		}
		if previous, duplicate := numbers[number]; duplicate {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, name)
		}
		numbers[number] = name

		body, err := fs.ReadFile(m.source, file)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		statements := statementsOf(string(body))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s has no SQL statements", name)
		}
		found = append(found, migration{Version: version, Name: name, Statements: statements})
	}

	sort.Slice(found, func(i, j int) bool {
		left, _ := strconv.Atoi(found[i].Version)
		right, _ := strconv.Atoi(found[j].Version)
		return left < right
	})
	return found, nil
}

func (m *migrator) appliedVersions() (map[string]bool, error) {
	var versions []string
	if err := m.database.Table("schema_migrations").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, version := range versions {
		applied[version] = true
	}
	return applied, nil
}

func (m *migrator) apply(next migration) error {
	return m.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range next.Statements {
			if columnAlreadyAdded(tx, statement) {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", next.Name, statement, err)
			}
		}

		err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, next.Version, next.Name).Error
		if err != nil {
			return fmt.Errorf("record migration %s: %w", next.Name, err)
		}
		return nil
	})
}

// columnAlreadyAdded makes ADD COLUMN replayable on databases whose schema
// was created before the version table existed. SQLite has no IF NOT EXISTS
// for columns.
func columnAlreadyAdded(tx *gorm.DB, statement string) bool {
	matches := addColumnPattern.FindStringSubmatch(statement)
	if matches == nil {
		return false
	}
	return tx.Migrator().HasColumn(matches[1], matches[2])
}

func statementsOf(sqlText string) []string {
	var statements []string
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

var errUnknownDialect = errors.New("unknown migration dialect")

func migrate(database *gorm.DB, sqlDialect dialect) error {
	switch sqlDialect {
	case dialectSQLite, dialectPostgres:
		return newMigrator(database, sqlDialect).Up()
	default:
		return fmt.Errorf("%w %q", errUnknownDialect, sqlDialect)
	}
}
