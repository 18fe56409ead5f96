package main

import (
	"testing"
)

func TestRun_VersionFlag(t *testing.T) {
	if code := run([]string{"--version"}); code != 0 {
		t.Fatalf("expected exit code 0 for --version, got %d", code)
	}
}

func TestRun_VersionCommand(t *testing.T) {
	if code := run([]string{"version"}); code != 0 {
		t.Fatalf("expected exit code 0 for version command, got %d", code)
	}
}

func TestRun_NoArgs(t *testing.T) {
	if code := run(nil); code != 2 {
		t.Fatalf("expected exit code 2 for missing command, got %d", code)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if code := run([]string{"frobnicate"}); code != 2 {
		t.Fatalf("expected exit code 2 for unknown command, got %d", code)
	}
}

func TestRunGenerate_MissingQuery(t *testing.T) {
	if code := runGenerate(nil); code != 2 {
		t.Fatalf("expected exit code 2 for generate without a capability, got %d", code)
	}
}

func TestRunGenerate_InvalidFlag(t *testing.T) {
	if code := runGenerate([]string{"--no-such-flag"}); code != 2 {
		t.Fatalf("expected exit code 2 for invalid flag, got %d", code)
	}
}

func TestRunCapabilities_BuiltinSeed(t *testing.T) {
	if code := runCapabilities(nil); code != 0 {
		t.Fatalf("expected exit code 0 listing the built-in framework, got %d", code)
	}
}

func TestRunCapabilities_JSON(t *testing.T) {
	if code := runCapabilities([]string{"--json"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunCapabilities_MissingSeedFile(t *testing.T) {
	if code := runCapabilities([]string{"--seed", "/no/such/file.yaml"}); code != 2 {
		t.Fatalf("expected exit code 2 for unreadable seed, got %d", code)
	}
}

func TestRunAPI_InvalidFlag(t *testing.T) {
	if code := runAPI([]string{"--no-such-flag"}); code != 2 {
		t.Fatalf("expected exit code 2 for invalid flag, got %d", code)
	}
}

func TestRunServe_InvalidFlag(t *testing.T) {
	if code := runServe([]string{"--no-such-flag"}); code != 2 {
		t.Fatalf("expected exit code 2 for invalid flag, got %d", code)
	}
}
