package support

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// theServerIsRunning starts the in-process identification server.
func (testCtx *TestContext) theServerIsRunning() error {
	if testCtx.HTTPTestServer != nil {
		return nil
	}
	return testCtx.startTestHTTPServer()
}

// iPostTextToIdentify sends raw text to the identify endpoint.
func (testCtx *TestContext) iPostTextToIdentify(text string) error {
	return testCtx.postIdentifyText(text)
}

// iRequestTheEndpoint performs a GET against the given path.
func (testCtx *TestContext) iRequestTheEndpoint(path string) error {
	return testCtx.doHTTPRequest(http.MethodGet, path, "", nil)
}

// theResponseStatusShouldBe checks the HTTP status code.
func (testCtx *TestContext) theResponseStatusShouldBe(expected int) error {
	if testCtx.LastHTTPStatusCode != expected {
		return fmt.Errorf("expected status %d, got %d\nbody: %s",
			expected, testCtx.LastHTTPStatusCode, testCtx.LastHTTPResponse)
	}
	return nil
}

// theResponseShouldContain checks the response body for a substring.
func (testCtx *TestContext) theResponseShouldContain(expected string) error {
	if !strings.Contains(testCtx.LastHTTPResponse, expected) {
		return fmt.Errorf("response does not contain %q:\n%s", expected, testCtx.LastHTTPResponse)
	}
	return nil
}

// theResponseShouldBeValidJSON checks that the body parses as JSON.
func (testCtx *TestContext) theResponseShouldBeValidJSON() error {
	var payload interface{}
	if err := json.Unmarshal([]byte(testCtx.LastHTTPResponse), &payload); err != nil {
		return fmt.Errorf("response is not valid JSON: %w\n%s", err, testCtx.LastHTTPResponse)
	}
	return nil
}

// theIdentifiedLanguageShouldBe checks the language field of the response.
func (testCtx *TestContext) theIdentifiedLanguageShouldBe(expected string) error {
	var payload struct {
		Language string `json:"language"`
	}
	if err := json.Unmarshal([]byte(testCtx.LastHTTPResponse), &payload); err != nil {
		return fmt.Errorf("failed to parse identify response: %w\n%s", err, testCtx.LastHTTPResponse)
	}
	if payload.Language != expected {
		return fmt.Errorf("expected language %q, got %q\nbody: %s",
			expected, payload.Language, testCtx.LastHTTPResponse)
	}
	return nil
}

// theResponseHeaderShouldBe checks a response header value.
func (testCtx *TestContext) theResponseHeaderShouldBe(name, expected string) error {
	got, ok := testCtx.LastHTTPHeaders[name]
	if !ok {
		return fmt.Errorf("response is missing header %s", name)
	}
	if got != expected {
		return fmt.Errorf("expected header %s to be %q, got %q", name, expected, got)
	}
	return nil
}

// RegisterServerSteps registers the HTTP server step definitions.
func (testCtx *TestContext) RegisterServerSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the identification server is running$`, testCtx.theServerIsRunning)
	sc.Step(`^I post the text "([^"]*)" to the identify endpoint$`, testCtx.iPostTextToIdentify)
	sc.Step(`^I request the "([^"]*)" endpoint$`, testCtx.iRequestTheEndpoint)
	sc.Step(`^the response status should be (\d+)$`, testCtx.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, testCtx.theResponseShouldContain)
	sc.Step(`^the response should be valid JSON$`, testCtx.theResponseShouldBeValidJSON)
	sc.Step(`^the identified language should be "([^"]*)"$`, testCtx.theIdentifiedLanguageShouldBe)
	sc.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, testCtx.theResponseHeaderShouldBe)
}
