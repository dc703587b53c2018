package configsqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Struct is the `database` section of a config file. Either a local sqlite
// file or a remote libsql url can be given, the url wins if both are set.
type Struct struct {
	File string `json:"file"`
	Url  string `json:"url"`
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "libsql://") ||
		strings.HasPrefix(url, "https://") ||
		strings.HasPrefix(url, "http://") ||
		strings.HasPrefix(url, "wss://")
}

// OpenDB opens the configured database and applies schema to it, schema
// statements are expected to be idempotent (CREATE ... IF NOT EXISTS).
func (config Struct) OpenDB(schema string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch {
	case config.Url != "":
		if !isRemote(config.Url) {
			return nil, fmt.Errorf("unsupported database url '%s'", config.Url)
		}
		db, err = sql.Open("libsql", config.Url)
		if err != nil {
			return nil, err
		}
	case config.File != "":
		db, err = openFile(config.File)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("neither a database file nor url was specified")
	}

	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

func openFile(file string) (*sql.DB, error) {
	dbpath, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	err = os.MkdirAll(filepath.Dir(dbpath), 0755)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	// sqlite only allows one writer at a time
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
