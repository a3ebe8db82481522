package support

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// referenceProfiles is the fixture data written for every scenario that
// declares "the reference profiles are available": a small English and
// Spanish set, enough for the similarity ranking to separate the two.
var referenceProfiles = map[string][]string{
	"en": {"the,10", "he ,8", " th,8", "ing,5", "and,5", "nd ,4", "ed ,3"},
	"es": {"el ,10", " el,8", "de ,8", " de,6", "que,5", "ue ,4", " qu,3"},
}

var referenceLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
}

// theReferenceProfilesAreAvailable writes the fixture profile directory and
// points LANGID_PROFILES_DIR at it.
func (testCtx *TestContext) theReferenceProfilesAreAvailable() error {
	dir := testCtx.GetTempDir("profiles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}

	var index strings.Builder
	for code, name := range referenceLanguages {
		fmt.Fprintf(&index, "%s,%s\n", code, name)
	}
	if err := os.WriteFile(filepath.Join(dir, "languages.csv"), []byte(index.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write language index: %w", err)
	}

	for code, rows := range referenceProfiles {
		content := strings.Join(rows, "\n") + "\n"
		if err := os.WriteFile(filepath.Join(dir, code+".csv"), []byte(content), 0o600); err != nil {
			return fmt.Errorf("failed to write profile for %s: %w", code, err)
		}
	}

	testCtx.ProfilesDir = dir
	testCtx.AddEnvVar("LANGID_PROFILES_DIR", dir)
	return nil
}

// aTextFileContaining writes a scenario input file into the temp directory.
func (testCtx *TestContext) aTextFileContaining(name, content string) error {
	path := testCtx.GetTempDir(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// substituteCommandVariables replaces placeholders with scenario paths.
func (testCtx *TestContext) substituteCommandVariables(command string) string {
	command = strings.ReplaceAll(command, "${TMPDIR}", testCtx.TempDir)
	command = strings.ReplaceAll(command, "${PROFILES}", testCtx.ProfilesDir)
	return command
}

// iRunCommand executes a command and stores the result.
func (testCtx *TestContext) iRunCommand(command string) error {
	command = testCtx.substituteCommandVariables(command)

	testCtx.LastCommand = command
	testCtx.LastStartTime = time.Now()

	parts := strings.Fields(command)
	if len(parts) == 0 {
		return errors.New("empty command")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = testCtx.WorkingDir
	cmd.Env = append(os.Environ(), testCtx.EnvVars...)

	output, err := cmd.CombinedOutput()
	testCtx.LastOutput = string(output)
	testCtx.LastError = err
	testCtx.LastDuration = time.Since(testCtx.LastStartTime)

	if err != nil {
		exitError := &exec.ExitError{}
		if errors.As(err, &exitError) {
			testCtx.LastExitCode = exitError.ExitCode()
		} else {
			testCtx.LastExitCode = -1
		}
	} else {
		testCtx.LastExitCode = 0
	}

	return nil
}

// theCommandShouldSucceed verifies the last command exited cleanly.
func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastExitCode != 0 {
		return fmt.Errorf("command failed with exit code %d: %s\noutput: %s",
			testCtx.LastExitCode, testCtx.LastCommand, testCtx.LastOutput)
	}
	return nil
}

// theCommandShouldFail verifies the last command exited with an error.
func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastExitCode == 0 {
		return fmt.Errorf("command succeeded but was expected to fail: %s\noutput: %s",
			testCtx.LastCommand, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldContain verifies the command output contains a substring.
func (testCtx *TestContext) theOutputShouldContain(expected string) error {
	if !strings.Contains(testCtx.LastOutput, expected) {
		return fmt.Errorf("output does not contain %q:\n%s", expected, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldNotContain verifies a substring is absent from the output.
func (testCtx *TestContext) theOutputShouldNotContain(unexpected string) error {
	if strings.Contains(testCtx.LastOutput, unexpected) {
		return fmt.Errorf("output unexpectedly contains %q:\n%s", unexpected, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldBeValidJSON verifies the output parses as JSON. Log lines
// before the payload are skipped by scanning for the first brace.
func (testCtx *TestContext) theOutputShouldBeValidJSON() error {
	start := strings.IndexAny(testCtx.LastOutput, "{[")
	if start < 0 {
		return fmt.Errorf("no JSON payload in output:\n%s", testCtx.LastOutput)
	}
	var payload interface{}
	if err := json.Unmarshal([]byte(testCtx.LastOutput[start:]), &payload); err != nil {
		return fmt.Errorf("output is not valid JSON: %w\n%s", err, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldBeValidCSV verifies the output parses as CSV.
func (testCtx *TestContext) theOutputShouldBeValidCSV() error {
	reader := csv.NewReader(strings.NewReader(testCtx.LastOutput))
	reader.FieldsPerRecord = -1
	if _, err := reader.ReadAll(); err != nil {
		return fmt.Errorf("output is not valid CSV: %w\n%s", err, testCtx.LastOutput)
	}
	return nil
}

// theFileShouldExist verifies a file was created, resolving placeholders.
func (testCtx *TestContext) theFileShouldExist(name string) error {
	path := testCtx.substituteCommandVariables(name)
	if !filepath.IsAbs(path) {
		path = testCtx.GetTempDir(path)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("expected file %s to exist: %w", path, err)
	}
	return nil
}

// theFileShouldContain verifies file content, resolving placeholders.
func (testCtx *TestContext) theFileShouldContain(name, expected string) error {
	path := testCtx.substituteCommandVariables(name)
	if !filepath.IsAbs(path) {
		path = testCtx.GetTempDir(path)
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: test reads its own artifacts
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !strings.Contains(string(data), expected) {
		return fmt.Errorf("file %s does not contain %q:\n%s", path, expected, string(data))
	}
	return nil
}

// theEnvironmentVariableIsSetTo records an env var for later commands.
func (testCtx *TestContext) theEnvironmentVariableIsSetTo(name, value string) error {
	testCtx.AddEnvVar(name, testCtx.substituteCommandVariables(value))
	return nil
}

// RegisterCommonSteps registers the shared step definitions.
func (testCtx *TestContext) RegisterCommonSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the reference profiles are available$`, testCtx.theReferenceProfilesAreAvailable)
	sc.Step(`^a text file "([^"]*)" containing "([^"]*)"$`, testCtx.aTextFileContaining)

	sc.Step(`^I run "([^"]*)"$`, testCtx.iRunCommand)
	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)

	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the output should not contain "([^"]*)"$`, testCtx.theOutputShouldNotContain)
	sc.Step(`^the output should be valid JSON$`, testCtx.theOutputShouldBeValidJSON)
	sc.Step(`^the output should be valid CSV$`, testCtx.theOutputShouldBeValidCSV)

	sc.Step(`^the file "([^"]*)" should exist$`, testCtx.theFileShouldExist)
	sc.Step(`^the file "([^"]*)" should contain "([^"]*)"$`, testCtx.theFileShouldContain)
	sc.Step(`^the environment variable "([^"]*)" is set to "([^"]*)"$`, testCtx.theEnvironmentVariableIsSetTo)
}
