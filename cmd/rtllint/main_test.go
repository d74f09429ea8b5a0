// Package main provides tests for the rtllint CLI.
package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/rtllint/internal/cli"
	"github.com/leapstack-labs/rtllint/internal/cli/config"
	"github.com/leapstack-labs/rtllint/internal/cli/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := run(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(output, "rtllint") {
		t.Errorf("version output should contain 'rtllint', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, err := run(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	expectedCommands := []string{"lint", "preprocess", "rules", "history", "version"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestRulesCommand(t *testing.T) {
	output, err := run(t, "rules", "--output", "markdown")
	if err != nil {
		t.Fatalf("rules command error = %v", err)
	}
	for _, expected := range []string{"# Lint Rules", "LATCH", "BLKSEQ", "NOMODULE"} {
		if !strings.Contains(output, expected) {
			t.Errorf("rules output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestPreprocessCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	output, err := run(t,
		"preprocess",
		"--scratch-dir", filepath.Join(dir, "build"),
		"-I", filepath.Join(dir, "include"),
		"--state", filepath.Join(dir, "state.db"),
		filepath.Join(dir, "rtl", "alu.v"),
	)
	if err != nil {
		t.Fatalf("preprocess command error = %v\n%s", err, output)
	}
	if !strings.Contains(output, filepath.Join(dir, "build", "alu.v")) {
		t.Errorf("preprocess output should list the cleaned target, got: %s", output)
	}
}

func TestLintCommand_NoParser(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	output, err := run(t,
		"lint",
		"--rules", filepath.Join(dir, "lint_config.yaml"),
		"--scratch-dir", filepath.Join(dir, "build"),
		"-I", filepath.Join(dir, "include"),
		filepath.Join(dir, "rtl", "alu.v"),
	)
	if err == nil {
		t.Fatalf("lint without a parser should fail, got output: %s", output)
	}
	if !strings.Contains(output, "no parser configured") {
		t.Errorf("lint output should explain the missing parser, got: %s", output)
	}
}
