package telemetry

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("armata", rec)

	scoped.ReportBroken("client.player-statistics", "boom")
	scoped.ReportWarning("parser.battalion-roster")
	scoped.ReportDebug("fetched")
	scoped.ReportCount("snapshots", 3)

	nested := NewScopedAPI("outer", scoped)
	nested.ReportBroken("inner")

	reports := rec.Reports()
	require.Len(t, reports, 5)
	require.Equal(t, Report{Kind: KindBroken, ID: "armata: client.player-statistics", Params: []any{"boom"}}, reports[0])
	require.Equal(t, "armata: parser.battalion-roster", reports[1].ID)
	require.Equal(t, KindDebug, reports[2].Kind)
	require.Equal(t, Report{Kind: KindCount, ID: "armata: snapshots", Count: 3}, reports[3])
	require.Equal(t, "armata: outer: inner", reports[4].ID)

	require.Equal(t, []string{"armata: client.player-statistics", "armata: outer: inner"}, rec.IDs(KindBroken))
	require.Equal(t, []string{"armata: parser.battalion-roster"}, rec.IDs(KindWarning))
}

func TestSlogAPI(t *testing.T) {
	buf := &bytes.Buffer{}
	tel := SlogAPI{Logger: slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))}

	tel.ReportBroken("client.battalion-members", "status 502")
	tel.ReportCount("snapshots", 12)
	tel.ReportDebug("parsed roster", 4)

	out := buf.String()
	require.Contains(t, out, `level=ERROR msg="broken component" id=client.battalion-members params.0="status 502"`)
	require.Contains(t, out, `level=INFO msg=count id=snapshots n=12`)
	require.Contains(t, out, `level=DEBUG msg="parsed roster" params.0=4`)
}

func TestInstrumentResty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec := &Recorder{}
	client := resty.New()
	InstrumentResty(client, rec)

	res, err := client.R().Get(srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())

	require.Equal(t, []string{report_resty_request, report_resty_response}, rec.IDs(KindDebug))
	require.Empty(t, rec.IDs(KindBroken))
	require.Empty(t, rec.IDs(KindWarning))

	reports := rec.Reports()
	require.Equal(t, uint64(1), reports[0].Params[0])
	require.Equal(t, http.MethodGet, reports[0].Params[1])
	require.Equal(t, uint64(1), reports[1].Params[0])
}

func TestInstrumentRestyError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rec := &Recorder{}
	client := resty.New()
	InstrumentResty(client, rec)

	_, err := client.R().Get(url)
	require.Error(t, err)
	require.Equal(t, []string{report_resty_response}, rec.IDs(KindBroken))
	require.Equal(t, []string{report_resty_request}, rec.IDs(KindDebug))
}
