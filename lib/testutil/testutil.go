package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
	// if true, the db is a file in a temporary directory instead of `:memory:`
	DbOnDisk bool
}

type ServiceResult struct {
	DB *sql.DB
}

func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	if params.DbSchema == "" {
		return ServiceResult{}, func() {}
	}

	dbpath := ":memory:"
	if params.DbOnDisk {
		dbpath = filepath.Join(t.TempDir(), params.Name+".db")
	}
	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	_, err = db.Exec(params.DbSchema)
	if err != nil {
		t.Fatal(err)
	}

	return ServiceResult{DB: db}, func() {
		err := db.Close()
		if err != nil {
			t.Error(err)
		}
	}
}
