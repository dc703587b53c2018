package configsqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSchema = `CREATE TABLE IF NOT EXISTS kv (k TEXT PRIMARY KEY, v TEXT NOT NULL);`

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshots.db")

	db, err := Struct{File: path}.OpenDB(testSchema)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`INSERT INTO kv (k, v) VALUES ('a', 'b')`)
	if err != nil {
		t.Fatal(err)
	}
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	// reopening applies the schema again without complaint
	db, err = Struct{File: path}.OpenDB(testSchema)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var v string
	err = db.QueryRow(`SELECT v FROM kv WHERE k = 'a'`).Scan(&v)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "b", v)
}

func TestOpenDBInvalid(t *testing.T) {
	_, err := Struct{}.OpenDB(testSchema)
	require.Error(t, err)

	_, err = Struct{Url: "ftp://nope"}.OpenDB(testSchema)
	require.Error(t, err)
}
