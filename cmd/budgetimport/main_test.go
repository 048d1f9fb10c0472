package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
)

func TestOpenBackendDryRunTrimsProject(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	dryRun, projectID = true, "  P-1 "
	t.Cleanup(func() { dryRun, projectID = false, "" })

	be, err := openBackend(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("openBackend failed: %v", err)
	}
	defer be.close()

	p, err := be.projects.LookupProject(context.Background(), "P-1")
	if err != nil {
		t.Fatalf("LookupProject failed: %v", err)
	}
	if p == nil {
		t.Fatal("Expected dry-run project P-1 to be known")
	}
}
