package armata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/lookandhate/ArmoredWarfareAPI/internal/components/assert"
	"github.com/lookandhate/ArmoredWarfareAPI/internal/components/telemetry"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

const (
	report_client_player_statistics = "client.player-statistics"
	report_client_battalion_members = "client.battalion-members"
	report_client_search_battalions = "client.search-battalions"
)

const (
	DefaultBaseUrl = "https://armata.my.games"
	DefaultTimeout = time.Second * 30
)

const (
	userStatsEndpoint       = "/dynamic/user/"
	battalionEndpoint       = "/dynamic/aliance/index.php"
	battalionSearchEndpoint = "/dynamic/gamecenter/"
)

var tracer = otel.Tracer("armata")

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// session cookies of a logged in account
	Cookies []Cookie
	// defaults to DefaultTimeout
	Timeout   time.Duration
	Telemetry telemetry.API
	// if set, every request and response is written to it
	Dump restyutil.InstrumentOutput
}

// Client fetches pages from the statistics site and parses them. It is
// safe for concurrent use.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	parser Parser
	tel    telemetry.API
}

func NewClient(opts ClientOptions) (*Client, error) {
	assert.NotNil(opts.Telemetry, "opts.Telemetry")
	tel := telemetry.NewScopedAPI("armata", opts.Telemetry)

	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	parsedBaseUrl, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.SetCookies(httpCookies(opts.Cookies))
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	httpClient.SetTimeout(timeout)

	telemetry.InstrumentResty(httpClient, tel)
	restyutil.InstrumentClient(httpClient, tracer, opts.Dump)

	return &Client{
		BaseUrl: parsedBaseUrl,
		Http:    httpClient,
		parser:  NewParser(tel),
		tel:     tel,
	}, nil
}

// Close releases idle connections, the client should not be used after.
func (c *Client) Close() {
	c.Http.GetClient().CloseIdleConnections()
}

func (c *Client) fetch(req *resty.Request, method, endpoint string) (string, error) {
	res, err := req.Execute(method, endpoint)
	if err != nil {
		return "", err
	}
	if res.StatusCode() != http.StatusOK {
		return "", BadHTTPStatusError{Code: res.StatusCode()}
	}
	return string(res.Body()), nil
}

// PlayerStatistics fetches and parses the statistics of a player.
func (c *Client) PlayerStatistics(ctx context.Context, query PlayerQuery) (PlayerStatistics, error) {
	err := query.Validate()
	if err != nil {
		return PlayerStatistics{}, err
	}

	page, err := c.fetch(
		c.Http.R().
			SetContext(ctx).
			SetQueryParams(query.params()),
		http.MethodGet,
		userStatsEndpoint,
	)
	if err != nil {
		c.tel.ReportBroken(report_client_player_statistics, fmt.Errorf("fetch: %w", err), query.Nickname, query.PlayerID)
		return PlayerStatistics{}, err
	}
	return c.parser.PlayerStatistics(page, query.Nickname)
}

// BattalionMembers fetches and parses the roster of a battalion.
func (c *Client) BattalionMembers(ctx context.Context, battalionID int64) ([]BattalionMemberEntry, error) {
	page, err := c.fetch(
		c.Http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"a":    "index",
				"data": strconv.FormatInt(battalionID, 10),
			}),
		http.MethodGet,
		battalionEndpoint,
	)
	if err != nil {
		c.tel.ReportBroken(report_client_battalion_members, fmt.Errorf("fetch: %w", err), battalionID)
		return nil, err
	}
	return c.parser.BattalionRoster(page, battalionID)
}

// SearchBattalions looks up battalions by (part of) their full name.
func (c *Client) SearchBattalions(ctx context.Context, name string) ([]BattalionSearchResultEntry, error) {
	body, err := c.fetch(
		c.Http.R().
			SetContext(ctx).
			SetQueryParam("a", "clan_search").
			SetFormData(map[string]string{"name": name}),
		http.MethodPost,
		battalionSearchEndpoint,
	)
	if err != nil {
		c.tel.ReportBroken(report_client_search_battalions, fmt.Errorf("fetch: %w", err), name)
		return nil, err
	}
	return c.parser.SearchResults(body, name)
}
