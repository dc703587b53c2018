package configutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl     string `json:"base_url"`
	CookiesFile string `json:"cookies_file"`
	Timeout     int    `json:"timeout_seconds"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "awstats.local.json5", LocalPath("awstats.json5"))
	require.Equal(t, filepath.Join("a", "b.local.json5"), LocalPath(filepath.Join("a", "b.json5")))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "awstats.json5")

	_, err := ReadConfig[testConfig](path)
	require.True(t, errors.Is(err, os.ErrNotExist))

	writeFile(t, path, `{
		// comments and trailing commas are fine in json5
		base_url: "https://armata.my.games",
		cookies_file: "cookies.json",
		timeout_seconds: 30,
	}`)

	cfg, err := ReadConfig[testConfig](path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, testConfig{
		BaseUrl:     "https://armata.my.games",
		CookiesFile: "cookies.json",
		Timeout:     30,
	}, cfg)

	writeFile(t, LocalPath(path), `{cookies_file: "my_cookies.json"}`)

	cfg, err = ReadConfig[testConfig](path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "https://armata.my.games", cfg.BaseUrl)
	require.Equal(t, "my_cookies.json", cfg.CookiesFile)
	require.Equal(t, 30, cfg.Timeout)
}

func TestReadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "awstats.json5")
	writeFile(t, path, `{base_url: `)

	_, err := ReadConfig[testConfig](path)
	require.Error(t, err)
	require.False(t, errors.Is(err, os.ErrNotExist))
}
