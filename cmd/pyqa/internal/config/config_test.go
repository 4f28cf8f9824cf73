package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/foot4ever/pyqa/cmd/pyqa/internal/config"
)

func TestLoader(t *testing.T) {
	t.Parallel()

	t.Run("loads valid config", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, config.FileName)
		content := "version: \"1\"\nproject: foot4ever\nsource: app\nline_length: 120\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		loader := config.NewLoader()
		f, err := loader.Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Project != "foot4ever" {
			t.Errorf("expected project 'foot4ever', got %q", f.Project)
		}
		if f.Source != "app" {
			t.Errorf("expected source 'app', got %q", f.Source)
		}
		if f.LineLength != 120 {
			t.Errorf("expected line_length 120, got %d", f.LineLength)
		}
	})

	t.Run("applies defaults for omitted fields", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, config.FileName)
		if err := os.WriteFile(path, []byte("version: \"1\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		loader := config.NewLoader()
		f, err := loader.Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Source != config.DefaultSource {
			t.Errorf("expected default source, got %q", f.Source)
		}
		if f.Venv != config.DefaultVenv {
			t.Errorf("expected default venv, got %q", f.Venv)
		}
		if f.LineLength != config.DefaultLineLength {
			t.Errorf("expected default line length, got %d", f.LineLength)
		}
		if f.RcFile != config.DefaultRcFile {
			t.Errorf("expected default rcfile, got %q", f.RcFile)
		}
	})

	t.Run("returns error for invalid yaml", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, config.FileName)
		if err := os.WriteFile(path, []byte("invalid: yaml: content:"), 0o644); err != nil {
			t.Fatal(err)
		}

		loader := config.NewLoader()
		_, err := loader.Load(path)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("returns error for invalid version", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, config.FileName)
		if err := os.WriteFile(path, []byte("version: \"2\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		loader := config.NewLoader()
		_, err := loader.Load(path)
		if err == nil {
			t.Fatal("expected error for invalid version, got nil")
		}
	})

	t.Run("returns error for missing version", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, config.FileName)
		if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		loader := config.NewLoader()
		_, err := loader.Load(path)
		if err == nil {
			t.Fatal("expected error for missing version, got nil")
		}
	})

	t.Run("returns error for out-of-range line length", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, config.FileName)
		if err := os.WriteFile(path, []byte("version: \"1\"\nline_length: 7\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		loader := config.NewLoader()
		_, err := loader.Load(path)
		if err == nil {
			t.Fatal("expected error for out-of-range line length, got nil")
		}
	})

	t.Run("strict mode rejects unknown fields", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, config.FileName)
		if err := os.WriteFile(path, []byte("version: \"1\"\nbogus: true\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		loader := config.NewLoader()
		_, err := loader.Load(path)
		if err == nil {
			t.Fatal("expected error for unknown field, got nil")
		}
	})
}

func TestWriterRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := config.NewWriter().Write(&buf, config.Default()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := config.NewLoader().Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f != config.Default() {
		t.Errorf("round trip changed config: %+v", f)
	}
}

func TestFinder(t *testing.T) {
	t.Parallel()

	t.Run("finds config in start directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, config.FileName)
		if err := os.WriteFile(path, []byte("version: \"1\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		finder := config.NewFinder(config.NewLoader())
		_, projectDir, err := finder.Find(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if projectDir != dir {
			t.Errorf("expected project dir %s, got %s", dir, projectDir)
		}
	})

	t.Run("walks up to parent directories", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, config.FileName)
		if err := os.WriteFile(path, []byte("version: \"1\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		nested := filepath.Join(dir, "src", "handlers")
		if err := os.MkdirAll(nested, 0o755); err != nil {
			t.Fatal(err)
		}

		finder := config.NewFinder(config.NewLoader())
		_, projectDir, err := finder.Find(nested)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if projectDir != dir {
			t.Errorf("expected project dir %s, got %s", dir, projectDir)
		}
	})

	t.Run("errors when no config exists", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		finder := config.NewFinder(config.NewLoader())
		_, _, err := finder.Find(dir)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
