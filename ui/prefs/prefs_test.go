package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"retouch/pkg/colorutil"
)

// tempConfig points the settings path at a scratch directory for the
// duration of the test.
func tempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	tempConfig(t)

	p := Load()
	if got := p.DrawColor(); got != colorutil.Red {
		t.Errorf("DrawColor = %v, want %v", got, colorutil.Red)
	}
	if got := p.TextColor(); got != colorutil.Red {
		t.Errorf("TextColor = %v, want %v", got, colorutil.Red)
	}
	if got := p.DefaultText(); got != "Sample Text" {
		t.Errorf("DefaultText = %q, want %q", got, "Sample Text")
	}
	if got := p.StrokeWidth(); got != 2 {
		t.Errorf("StrokeWidth = %d, want 2", got)
	}
	if got := p.JPEGQuality(); got != 95 {
		t.Errorf("JPEGQuality = %d, want 95", got)
	}
	if got := p.HistoryCapacity(); got != 10 {
		t.Errorf("HistoryCapacity = %d, want 10", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tempConfig(t)

	p := Load()
	p.SetDrawColor(colorutil.Blue)
	p.SetTextColor(colorutil.Green)
	p.SetDefaultText("DRAFT")
	p.SetInt(KeyStrokeWidth, 5)
	p.SetInt(KeyJPEGQuality, 80)
	p.SetInt(KeyHistoryCapacity, 25)
	if err := p.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	q := Load()
	if got := q.DrawColor(); got != colorutil.Blue {
		t.Errorf("DrawColor = %v, want %v", got, colorutil.Blue)
	}
	if got := q.TextColor(); got != colorutil.Green {
		t.Errorf("TextColor = %v, want %v", got, colorutil.Green)
	}
	if got := q.DefaultText(); got != "DRAFT" {
		t.Errorf("DefaultText = %q, want %q", got, "DRAFT")
	}
	if got := q.StrokeWidth(); got != 5 {
		t.Errorf("StrokeWidth = %d, want 5", got)
	}
	if got := q.JPEGQuality(); got != 80 {
		t.Errorf("JPEGQuality = %d, want 80", got)
	}
	if got := q.HistoryCapacity(); got != 25 {
		t.Errorf("HistoryCapacity = %d, want 25", got)
	}
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	dir := tempConfig(t)

	path := filepath.Join(dir, "retouch", "settings.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := Load()
	if got := p.DrawColor(); got != colorutil.Red {
		t.Errorf("DrawColor after corrupt load = %v, want %v", got, colorutil.Red)
	}
	if got := p.HistoryCapacity(); got != 10 {
		t.Errorf("HistoryCapacity after corrupt load = %d, want 10", got)
	}
}

func TestTypedGettersRejectBadValues(t *testing.T) {
	tempConfig(t)

	p := Load()
	p.SetString(KeyDrawColor, "not-a-color")
	if got := p.DrawColor(); got != colorutil.Red {
		t.Errorf("DrawColor with bad hex = %v, want fallback %v", got, colorutil.Red)
	}

	p.SetInt(KeyJPEGQuality, 400)
	if got := p.JPEGQuality(); got != 95 {
		t.Errorf("JPEGQuality out of range = %d, want fallback 95", got)
	}

	p.SetInt(KeyStrokeWidth, -3)
	if got := p.StrokeWidth(); got != 2 {
		t.Errorf("negative StrokeWidth = %d, want fallback 2", got)
	}

	p.SetInt(KeyHistoryCapacity, 0)
	if got := p.HistoryCapacity(); got != 10 {
		t.Errorf("zero HistoryCapacity = %d, want fallback 10", got)
	}
}

func TestGenericAccessors(t *testing.T) {
	tempConfig(t)

	p := Load()
	if got := p.Float("missing"); got != 0 {
		t.Errorf("Float(missing) = %v, want 0", got)
	}
	if got := p.FloatWithFallback("missing", 1.5); got != 1.5 {
		t.Errorf("FloatWithFallback = %v, want 1.5", got)
	}
	p.SetFloat("zoom", 2.25)
	if got := p.Float("zoom"); got != 2.25 {
		t.Errorf("Float(zoom) = %v, want 2.25", got)
	}

	if got := p.Int("missing", 7); got != 7 {
		t.Errorf("Int(missing) = %d, want 7", got)
	}
	if got := p.String("missing"); got != "" {
		t.Errorf("String(missing) = %q, want empty", got)
	}
	if got := p.Bool("missing", true); !got {
		t.Error("Bool(missing, true) = false")
	}
	p.SetBool("grid", true)
	if !p.Bool("grid", false) {
		t.Error("Bool(grid) = false after SetBool(true)")
	}

	// Integer values survive a JSON round trip through float64.
	p.SetInt("count", 12)
	if err := p.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	q := Load()
	if got := q.Int("count", 0); got != 12 {
		t.Errorf("Int(count) after reload = %d, want 12", got)
	}
}
