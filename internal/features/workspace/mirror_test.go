package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"go-dashboards/internal/config"
	"go-dashboards/internal/features/dashboard"
	"go-dashboards/internal/features/widget"
)

func TestMirrorRoundTrip(t *testing.T) {
	mirror := NewMirror(&config.Config{DataDir: t.TempDir()})

	saved := []dashboard.Dashboard{
		{ID: "p1", Name: "Main", Widgets: []widget.Widget{
			{ID: "w1", Type: widget.TypeText, Title: "Nota", Config: map[string]any{"text": "olá"}},
		}},
		{ID: "p2", Name: "Cripto", Widgets: []widget.Widget{}},
	}
	if err := mirror.Save("user-1", saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := mirror.Load("user-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !dashboard.DashboardsEqual(saved, loaded) {
		t.Errorf("round trip changed the workspace: %+v", loaded)
	}
}

func TestMirrorLoadMissingFile(t *testing.T) {
	mirror := NewMirror(&config.Config{DataDir: t.TempDir()})

	loaded, err := mirror.Load("nobody")
	if err != nil {
		t.Fatalf("expected nil error for missing mirror, got %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil dashboards for missing mirror, got %+v", loaded)
	}
}

func TestMirrorLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	mirror := NewMirror(&config.Config{DataDir: dir})

	path := filepath.Join(dir, "econ-crypto-dashboard-v1.user-1.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := mirror.Load("user-1")
	if err != nil {
		t.Fatalf("corrupt mirror should not error, got %v", err)
	}
	if loaded != nil {
		t.Errorf("corrupt mirror should read as absent, got %+v", loaded)
	}
}

func TestMirrorFilesArePerUser(t *testing.T) {
	mirror := NewMirror(&config.Config{DataDir: t.TempDir()})

	if err := mirror.Save("alice", []dashboard.Dashboard{{ID: "a", Name: "A"}}); err != nil {
		t.Fatal(err)
	}
	if err := mirror.Save("bob", []dashboard.Dashboard{{ID: "b", Name: "B"}}); err != nil {
		t.Fatal(err)
	}

	fromAlice, _ := mirror.Load("alice")
	if len(fromAlice) != 1 || fromAlice[0].ID != "a" {
		t.Errorf("alice's mirror leaked, got %+v", fromAlice)
	}
	fromBob, _ := mirror.Load("bob")
	if len(fromBob) != 1 || fromBob[0].ID != "b" {
		t.Errorf("bob's mirror leaked, got %+v", fromBob)
	}
}
