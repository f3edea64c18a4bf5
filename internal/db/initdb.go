// internal/db/initdb.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const maintenanceDB = "postgres"

// CreateDatabaseIfNotExists connects to the maintenance database with the
// same credentials and creates the target database when it is missing.
// connString may be a postgres:// URL or a libpq key/value string.
func CreateDatabaseIfNotExists(ctx context.Context, connString string) error {
	dbName, err := extractDBName(connString)
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}
	if dbName == maintenanceDB {
		return nil
	}

	rootConnStr, err := replaceDBName(connString, maintenanceDB)
	if err != nil {
		return fmt.Errorf("failed to create root connection string: %w", err)
	}

	root, err := sql.Open("postgres", rootConnStr)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer root.Close()

	return ensureDatabase(ctx, root, dbName)
}

func ensureDatabase(ctx context.Context, root *sql.DB, name string) error {
	var exists bool
	err := root.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		return nil
	}

	logrus.WithField("database", name).Info("creating database")
	if _, err := root.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

func extractDBName(connString string) (string, error) {
	params, err := parseDSN(connString)
	if err != nil {
		return "", err
	}
	name := params["dbname"]
	if name == "" {
		return "", fmt.Errorf("could not find database name in connection string")
	}
	return name, nil
}

// replaceDBName returns connString in key/value form pointing at newName.
func replaceDBName(connString, newName string) (string, error) {
	params, err := parseDSN(connString)
	if err != nil {
		return "", err
	}
	params["dbname"] = newName
	return formatDSN(params), nil
}

func parseDSN(connString string) (map[string]string, error) {
	if strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://") {
		kv, err := pq.ParseURL(connString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse connection URL: %w", err)
		}
		connString = kv
	}
	return parseKeyValueDSN(connString)
}

// parseKeyValueDSN reads libpq "key=value" pairs. Values may be single-quoted
// and use backslash escapes.
func parseKeyValueDSN(s string) (map[string]string, error) {
	params := map[string]string{}
	r := []rune(s)
	i := 0
	skipSpace := func() {
		for i < len(r) && (r[i] == ' ' || r[i] == '\t' || r[i] == '\n') {
			i++
		}
	}

	for {
		skipSpace()
		if i >= len(r) {
			return params, nil
		}

		start := i
		for i < len(r) && r[i] != '=' && r[i] != ' ' {
			i++
		}
		key := string(r[start:i])
		skipSpace()
		if i >= len(r) || r[i] != '=' {
			return nil, fmt.Errorf("missing \"=\" after %q in connection string", key)
		}
		i++
		skipSpace()

		var val strings.Builder
		quoted := i < len(r) && r[i] == '\''
		if quoted {
			i++
		}
		closed := !quoted
		for i < len(r) {
			c := r[i]
			if c == '\\' && i+1 < len(r) {
				val.WriteRune(r[i+1])
				i += 2
				continue
			}
			if quoted && c == '\'' {
				i++
				closed = true
				break
			}
			if !quoted && c == ' ' {
				break
			}
			val.WriteRune(c)
			i++
		}
		if !closed {
			return nil, fmt.Errorf("unterminated quoted value for %q in connection string", key)
		}
		params[key] = val.String()
	}
}

var dsnValueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func formatDSN(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		v := params[k]
		if v == "" || strings.ContainsAny(v, ` '\`) {
			v = "'" + dsnValueEscaper.Replace(v) + "'"
		}
		parts[i] = k + "=" + v
	}
	return strings.Join(parts, " ")
}
