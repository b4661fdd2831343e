package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"askdata.insights.org/internal/app"
	"askdata.insights.org/internal/appconf"
	"askdata.insights.org/internal/logging"
	"askdata.insights.org/internal/metrics"
	"askdata.insights.org/internal/models"
)

var testNow = time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC)

func testConfig() appconf.Config {
	cfg := appconf.Default()
	cfg.Env = appconf.EnvFlagToEnvironment("test")
	cfg.EnvName = cfg.Env.String()
	cfg.ApiKeys = []string{"TEST"}
	cfg.ResponseDelay = 0
	return cfg
}

// createTestApi creates a RestAPI over the built-in catalog with a fixed clock.
func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithConfig(t, testConfig())
}

func createTestApiWithConfig(t *testing.T, cfg appconf.Config) *RestAPI {
	application := &app.Application{
		Config:  cfg,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics.New(),
	}

	api := NewRestAPI(application)
	api.now = func() time.Time { return testNow }
	t.Cleanup(func() { _ = api.Close() })
	return api
}

func newTestServer(t *testing.T, api *RestAPI) *httptest.Server {
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(api.WithMiddleware(router))
	t.Cleanup(server.Close)
	return server
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	return serveApiAndRequest(t, api, http.MethodGet, endpoint)
}

func serveApiAndRequest(t *testing.T, api *RestAPI, method, endpoint string) (*http.Response, models.ResponseModel) {
	resp, body := doRequest(t, newTestServer(t, api).URL, method, endpoint)

	var response models.ResponseModel
	require.NoError(t, json.Unmarshal(body, &response), string(body))
	return resp, response
}

// serveApiAndDecode is serveApiAndRequest for bodies that are not response envelopes.
func serveApiAndDecode(t *testing.T, api *RestAPI, method, endpoint string) (*http.Response, map[string]interface{}) {
	resp, body := doRequest(t, newTestServer(t, api).URL, method, endpoint)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded), string(body))
	return resp, decoded
}

func doRequest(t *testing.T, baseURL, method, endpoint string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, baseURL+endpoint, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// entryOf returns data.entry of a response envelope.
func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "data.entry should be an object")
	return entry
}

// listOf returns data.list of a response envelope.
func listOf(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "data.list should be an array")
	return list
}

// referencesOf returns data.references of a response envelope.
func referencesOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	refs, ok := data["references"].(map[string]interface{})
	require.True(t, ok, "data.references should be an object")
	return refs
}
