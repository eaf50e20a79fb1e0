package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dmglicense/internal/services"
	"dmglicense/internal/testsupport"
	"dmglicense/internal/udif"
)

func TestAttachDryRunWritesPlist(t *testing.T) {
	env := setupCLITestEnv(t)
	plistPath := filepath.Join(env.baseDir, "resources.plist")

	out, _, err := runCLI(t, []string{"attach", env.specPath, filepath.Join(env.baseDir, "missing.dmg"), "--dry-run", "--plist", plistPath}, env.configPath)
	if err != nil {
		t.Fatalf("attach --dry-run: %v", err)
	}
	requireContains(t, out, "dry run")

	fork, err := udif.Unmarshal(testsupport.ReadFile(t, plistPath))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	text, ok := fork.Find(udif.TypeText, udif.BaseResourceID)
	if !ok || string(text.Data) != "English terms" || text.Name != "English SLA" {
		t.Fatalf("unexpected first body %+v", text)
	}
	if _, ok := fork.Find(udif.TypeLabels, udif.BaseResourceID+1); !ok {
		t.Fatal("expected German labels in slot 1")
	}
	if testsupport.Captured(t, env.cfg, testsupport.CapturedArgs) != nil {
		t.Fatal("dry run must not invoke hdiutil")
	}
}

func TestAttachDryRunPrintsPlist(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"attach", env.specPath, env.imagePath, "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("attach --dry-run: %v", err)
	}
	for _, fragment := range []string{"<key>LPic</key>", "<key>STR#</key>", "<key>TEXT</key>"} {
		requireContains(t, out, fragment)
	}
}

func TestAttachInvokesHDIUtil(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"attach", env.specPath, env.imagePath}, env.configPath)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	requireContains(t, out, "2 licenses for 3 languages")

	args := strings.TrimSpace(string(testsupport.Captured(t, env.cfg, testsupport.CapturedArgs)))
	if want := "udifrez -xml /dev/fd/3 " + env.imagePath + " " + env.imagePath; args != want {
		t.Fatalf("hdiutil args = %q, want %q", args, want)
	}
	fork, err := udif.Unmarshal(testsupport.Captured(t, env.cfg, testsupport.CapturedPlist))
	if err != nil {
		t.Fatalf("decode captured plist: %v", err)
	}
	if _, ok := fork.Find(udif.TypeIndex, udif.BaseResourceID); !ok {
		t.Fatal("expected LPic in the plist passed to hdiutil")
	}
	if _, err := os.Stat(env.imagePath + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("expected lock file to be removed, stat err = %v", err)
	}
}

func TestAttachOutputLeavesInputUntouched(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(env.baseDir, "licensed.dmg")

	if _, _, err := runCLI(t, []string{"attach", env.specPath, env.imagePath, "-o", output}, env.configPath); err != nil {
		t.Fatalf("attach --output: %v", err)
	}

	args := string(testsupport.Captured(t, env.cfg, testsupport.CapturedArgs))
	if strings.Contains(args, env.imagePath) || !strings.Contains(args, ".licensed.dmg.") {
		t.Fatalf("expected hdiutil to edit a staged copy, got %q", args)
	}
	if got := string(testsupport.ReadFile(t, output)); got != "fake image contents" {
		t.Fatalf("unexpected output contents %q", got)
	}
	entries, err := os.ReadDir(env.baseDir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") || strings.HasSuffix(entry.Name(), ".lock") {
			t.Fatalf("leftover file %s", entry.Name())
		}
	}
}

func TestAttachWarningsAndStrictMode(t *testing.T) {
	env := setupCLITestEnv(t)
	spec := testsupport.WriteText(t, env.baseDir, "partial.json", `{"body": [{"lang": ["en-US", "xx-XX"], "text": "Terms"}]}`)

	_, stderr, err := runCLI(t, []string{"attach", spec, env.imagePath, "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("attach without --strict: %v", err)
	}
	requireContains(t, stderr, "Warning:")
	requireContains(t, stderr, "xx-XX")

	_, _, err = runCLI(t, []string{"attach", spec, env.imagePath, "--dry-run", "--strict"}, env.configPath)
	requireExitCode(t, err, services.ExitDataErr)

	_, stderr, err = runCLI(t, []string{"attach", spec, env.imagePath, "--dry-run", "-q"}, env.configPath)
	if err != nil {
		t.Fatalf("attach -q: %v", err)
	}
	if strings.Contains(stderr, "Warning:") {
		t.Fatalf("quiet mode printed warnings: %q", stderr)
	}
}

func TestAttachWarningsAsErrorsFromConfig(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithWarningsAsErrors())
	spec := testsupport.WriteText(t, env.baseDir, "partial.json", `{"body": [{"lang": ["en-US", "xx-XX"], "text": "Terms"}]}`)
	_, _, err := runCLI(t, []string{"attach", spec, env.imagePath, "--dry-run"}, env.configPath)
	requireExitCode(t, err, services.ExitDataErr)
}

func TestAttachExitCodes(t *testing.T) {
	env := setupCLITestEnv(t)
	invalid := testsupport.WriteText(t, env.baseDir, "invalid.json", `{"body": [{"text": "no language"}]}`)
	missingFile := testsupport.WriteText(t, env.baseDir, "missing-file.json", `{"body": [{"lang": "en", "file": "nowhere.txt"}]}`)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing specification", []string{"attach", filepath.Join(env.baseDir, "none.json"), env.imagePath}, services.ExitNoInput},
		{"invalid specification", []string{"attach", invalid, env.imagePath}, services.ExitDataErr},
		{"missing body file", []string{"attach", missingFile, env.imagePath}, services.ExitNoInput},
		{"missing image", []string{"attach", env.specPath, filepath.Join(env.baseDir, "none.dmg")}, services.ExitNoInput},
		{"wrong argument count", []string{"attach", env.specPath}, services.ExitUsage},
		{"unknown flag", []string{"attach", env.specPath, env.imagePath, "--bogus"}, services.ExitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args, env.configPath)
			requireExitCode(t, err, tt.want)
		})
	}
}

func TestAttachMissingToolIsUnavailable(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.HDIUtil.Binary = filepath.Join(env.baseDir, "no-such-hdiutil")
	writeTestConfig(t, env.configPath, env.cfg)

	_, _, err := runCLI(t, []string{"attach", env.specPath, env.imagePath}, env.configPath)
	requireExitCode(t, err, services.ExitUnavailable)
}

func TestAttachToolFailure(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithHDIUtilScript("#!/bin/sh\necho 'udifrez: image is read-only' >&2\nexit 1\n"))
	_, _, err := runCLI(t, []string{"attach", env.specPath, env.imagePath}, env.configPath)
	requireExitCode(t, err, services.ExitUnavailable)
	requireContains(t, err.Error(), "image is read-only")
}
