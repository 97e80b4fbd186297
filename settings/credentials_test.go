package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func setupStoreDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	return dir
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	setupStoreDir(t)
	store, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(store) != 0 {
		t.Errorf("store = %v, want empty", store)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := setupStoreDir(t)

	store := Store{}
	store.Set("google", &Info{Key: "secret"})
	store.Set("custom-openai", &Info{Key: "k", BaseURL: "https://llm.internal/v1"})
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := filepath.Join(dir, "loctree", "auth.json")
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("auth.json missing: %v", err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("auth.json mode = %o, want 600", fi.Mode().Perm())
	}

	back, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	info, ok := back.Get("google")
	if !ok || info.Key != "secret" {
		t.Errorf("google = %+v, %v", info, ok)
	}
	info, _ = back.Get("custom-openai")
	if info.BaseURL != "https://llm.internal/v1" {
		t.Errorf("custom-openai = %+v", info)
	}
}

func TestRemove(t *testing.T) {
	store := Store{"google": &Info{Key: "k"}}
	if !store.Remove("google") {
		t.Error("Remove should report an existing entry")
	}
	if store.Remove("google") {
		t.Error("Remove should report a missing entry")
	}
}

func TestAPIKeyFor_LookupOrder(t *testing.T) {
	setupStoreDir(t)
	store := Store{"google": &Info{Key: "stored"}}

	if got := store.APIKeyFor("google", "flag"); got != "flag" {
		t.Errorf("flag should win, got %q", got)
	}

	t.Setenv("LOCTREE_API_KEY", "env")
	if got := store.APIKeyFor("google", ""); got != "env" {
		t.Errorf("env should beat store, got %q", got)
	}

	t.Setenv("LOCTREE_API_KEY", "")
	if got := store.APIKeyFor("google", ""); got != "stored" {
		t.Errorf("store fallback, got %q", got)
	}
	if got := store.APIKeyFor("groq", ""); got != "" {
		t.Errorf("unknown provider key = %q, want empty", got)
	}
}

func TestFilePath_RespectsXDG(t *testing.T) {
	dir := setupStoreDir(t)
	want := filepath.Join(dir, "loctree", "auth.json")
	if got := FilePath(); got != want {
		t.Errorf("FilePath = %q, want %q", got, want)
	}
}
