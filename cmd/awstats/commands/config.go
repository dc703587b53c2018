package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lookandhate/ArmoredWarfareAPI/internal/components/chrono"
	"github.com/lookandhate/ArmoredWarfareAPI/internal/components/telemetry"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/configutil"
	configsqlite "github.com/lookandhate/ArmoredWarfareAPI/lib/configutil/sqlite"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/restyutil"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/scrapers/armata"
	"github.com/lookandhate/ArmoredWarfareAPI/services/statsnapshots"
	"github.com/lookandhate/ArmoredWarfareAPI/services/statsnapshots/db"
)

type Config struct {
	BaseUrl string `json:"base_url"`
	// a cookie export of a logged in browser session
	CookiesFile    string              `json:"cookies_file"`
	TimeoutSeconds int                 `json:"timeout_seconds"`
	Database       configsqlite.Struct `json:"database"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl:  armata.DefaultBaseUrl,
		Database: configsqlite.Struct{File: "awstats.db"},
	}
}

func readConfig() (Config, error) {
	cfg, err := configutil.ReadConfig[Config](configPath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config not found, using defaults", "path", configPath)
		return defaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}

	defaults := defaultConfig()
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = defaults.BaseUrl
	}
	if cfg.Database.File == "" && cfg.Database.Url == "" {
		cfg.Database = defaults.Database
	}
	return cfg, nil
}

var tel telemetry.API = telemetry.SlogAPI{}

func createClient(cfg Config) (*armata.Client, error) {
	var cookies []armata.Cookie
	if cfg.CookiesFile != "" {
		var err error
		cookies, err = armata.LoadCookies(cfg.CookiesFile)
		if err != nil {
			return nil, err
		}
	} else {
		slog.Warn("no cookies_file configured, most pages require a logged in session")
	}

	opts := armata.ClientOptions{
		BaseUrl:   cfg.BaseUrl,
		Cookies:   cookies,
		Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		Telemetry: tel,
	}
	if dumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(dumpDir)
		if err != nil {
			return nil, fmt.Errorf("create dump dir: %w", err)
		}
		opts.Dump = output
	}
	return armata.NewClient(opts)
}

func openSnapshots(cfg Config) (statsnapshots.Service, *sql.DB, error) {
	database, err := cfg.Database.OpenDB(db.Schema)
	if err != nil {
		return statsnapshots.Service{}, nil, fmt.Errorf("open db: %w", err)
	}
	clock, err := chrono.NewStandardImpl()
	if err != nil {
		database.Close()
		return statsnapshots.Service{}, nil, err
	}
	return statsnapshots.NewService(database, clock, tel), database, nil
}
