package support

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/MeKo-Tech/langid/internal/langid"
	"github.com/MeKo-Tech/langid/internal/server"
)

// HTTPTestServerWrapper wraps an in-process httptest.Server around the real
// identification server so server scenarios run without a spawned binary.
type HTTPTestServerWrapper struct {
	Server     *httptest.Server
	TestServer *server.Server
}

// startTestHTTPServer builds the server from the scenario's profile fixture
// and starts an httptest listener in front of it.
func (testCtx *TestContext) startTestHTTPServer() error {
	if testCtx.ProfilesDir == "" {
		if err := testCtx.theReferenceProfilesAreAvailable(); err != nil {
			return err
		}
	}

	srv, err := server.NewServer(server.Config{
		CORSOrigin:  "*",
		MaxUploadMB: 10,
		TimeoutSec:  30,
		ProfilesDir: testCtx.ProfilesDir,
		Identify:    langid.Options{Threshold: 0.1},
	})
	if err != nil {
		return fmt.Errorf("failed to create test server: %w", err)
	}

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	testCtx.HTTPTestServer = &HTTPTestServerWrapper{
		Server:     httptest.NewServer(mux),
		TestServer: srv,
	}
	return nil
}

// stopTestHTTPServer shuts down the in-process server.
func (testCtx *TestContext) stopTestHTTPServer() error {
	if testCtx.HTTPTestServer == nil {
		return nil
	}
	testCtx.HTTPTestServer.Server.Close()
	err := testCtx.HTTPTestServer.TestServer.Close()
	testCtx.HTTPTestServer = nil
	return err
}

// doHTTPRequest performs a request against the test server and records the
// response for later assertions.
func (testCtx *TestContext) doHTTPRequest(method, path, contentType string, body io.Reader) error {
	if testCtx.HTTPTestServer == nil {
		return fmt.Errorf("test server is not running")
	}

	url := testCtx.HTTPTestServer.Server.URL + path
	req, err := http.NewRequest(method, url, body) //nolint:noctx // short-lived test request
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	testCtx.LastHTTPStatusCode = resp.StatusCode
	testCtx.LastHTTPResponse = string(data)
	testCtx.LastHTTPHeaders = make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		testCtx.LastHTTPHeaders[name] = resp.Header.Get(name)
	}
	return nil
}

// postIdentifyText posts raw text to the /identify endpoint.
func (testCtx *TestContext) postIdentifyText(text string) error {
	return testCtx.doHTTPRequest(http.MethodPost, "/identify", "text/plain", strings.NewReader(text))
}
