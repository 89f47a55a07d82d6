package cmd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/ericlevine/qrdecode/cmd/qrdecode/cmd"
	"github.com/klauspost/compress/zstd"
	goqrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/afero"
)

// cliContext holds the state of one scenario.
type cliContext struct {
	fs     afero.Fs
	stdout bytes.Buffer
	stderr bytes.Buffer
	err    error
}

func (c *cliContext) aQRCodeImage(name, content string) error {
	png, err := goqrcode.Encode(content, goqrcode.Medium, 256)
	if err != nil {
		return err
	}
	return afero.WriteFile(c.fs, name, png, 0o644)
}

func (c *cliContext) aZstdCompressedQRCodeImage(name, content string) error {
	png, err := goqrcode.Encode(content, goqrcode.Medium, 256)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return err
	}
	defer func() { _ = enc.Close() }()
	return afero.WriteFile(c.fs, name, enc.EncodeAll(png, nil), 0o644)
}

func (c *cliContext) aFile(name, content string) error {
	return afero.WriteFile(c.fs, name, []byte(content), 0o644)
}

func (c *cliContext) iRun(args string) error {
	root := cmd.NewRootCommand(c.fs)
	root.SetOut(&c.stdout)
	root.SetErr(&c.stderr)
	root.SetArgs(strings.Fields(args))
	c.err = root.Execute()
	return nil
}

func (c *cliContext) theCommandSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("command failed: %w\nstderr: %s", c.err, c.stderr.String())
	}
	return nil
}

func (c *cliContext) theCommandFailsWith(msg string) error {
	if c.err == nil {
		return fmt.Errorf("command succeeded, want error containing %q", msg)
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("error %q does not contain %q", c.err, msg)
	}
	return nil
}

func (c *cliContext) theOutputContains(s string) error {
	if !strings.Contains(c.stdout.String(), s) {
		return fmt.Errorf("output %q does not contain %q", c.stdout.String(), s)
	}
	return nil
}

func (c *cliContext) theOutputIsAJSONListOfResults(n int) error {
	var results []map[string]any
	if err := json.Unmarshal(c.stdout.Bytes(), &results); err != nil {
		return fmt.Errorf("output is not JSON: %w", err)
	}
	if len(results) != n {
		return fmt.Errorf("got %d results, want %d", len(results), n)
	}
	return nil
}

func initializeScenario(sc *godog.ScenarioContext) {
	c := &cliContext{}
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*c = cliContext{fs: afero.NewMemMapFs()}
		return ctx, nil
	})

	sc.Step(`^a QR code image "([^"]*)" containing "([^"]*)"$`, c.aQRCodeImage)
	sc.Step(`^a zstd compressed QR code image "([^"]*)" containing "([^"]*)"$`, c.aZstdCompressedQRCodeImage)
	sc.Step(`^a file "([^"]*)" containing "([^"]*)"$`, c.aFile)
	sc.Step(`^I run "([^"]*)"$`, c.iRun)
	sc.Step(`^the command succeeds$`, c.theCommandSucceeds)
	sc.Step(`^the command fails with "([^"]*)"$`, c.theCommandFailsWith)
	sc.Step(`^the output contains "([^"]*)"$`, c.theOutputContains)
	sc.Step(`^the output is a JSON list of (\d+) results$`, c.theOutputIsAJSONListOfResults)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "qrdecode",
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
