package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunOfflineCommands(t *testing.T) {
	dir := t.TempDir()
	if err := run("create", options{dir: dir, name: "add store region"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), "_add_store_region.sql") {
		t.Fatalf("expected one created migration, got %v %v", entries, err)
	}
	if err := run("validate", options{dir: dir}); err != nil {
		t.Fatalf("validate created dir: %v", err)
	}
	if err := run("validate", options{embedded: true}); err != nil {
		t.Fatalf("validate embedded: %v", err)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	if err := run("create", options{dir: t.TempDir()}); err == nil {
		t.Fatal("expected create without name to fail")
	}
	if err := run("sideways", options{}); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	bad := filepath.Join(t.TempDir(), "20260101000000_Bad-Name.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run("validate", options{dir: filepath.Dir(bad)}); err == nil {
		t.Fatal("expected invalid file name to fail validation")
	}
}

func TestCommandNamesSorted(t *testing.T) {
	names := commandNames()
	if names[0] != "create" || len(names) != len(offlineCommands)+len(dbCommands) {
		t.Fatalf("unexpected command list %v", names)
	}
}
