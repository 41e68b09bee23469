package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadContentDefaults(t *testing.T) {
	SetDir("")
	defer SetDir("prefabs")

	c, err := LoadContent()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	if problems := c.Validate(); len(problems) != 0 {
		t.Fatalf("embedded content should validate, got %v", problems)
	}
	if c.Settings.StartingLives != 3 || c.Settings.MaxLives != 5 {
		t.Fatalf("unexpected lives settings %+v", c.Settings)
	}
	if len(c.Stages) == 0 {
		t.Fatalf("expected stages")
	}
	boss, err := c.Boss("warden")
	if err != nil {
		t.Fatalf("boss lookup: %v", err)
	}
	if boss.Name != "warden" || boss.MaxHealth != 1000 || len(boss.Pattern) != 2 {
		t.Fatalf("unexpected boss %+v", boss)
	}
	ship, ok := c.Ships.Ship("")
	if !ok || ship.Name != "interceptor" {
		t.Fatalf("expected default ship, got %+v ok=%v", ship, ok)
	}
}

func TestLookupMissing(t *testing.T) {
	c := &Content{Enemies: map[string]EnemySpec{}, Bosses: map[string]BossSpec{}}
	if _, err := c.Enemy("ghost"); !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("expected ErrConfigurationMissing, got %v", err)
	}
	if _, err := c.Boss(""); !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("expected ErrConfigurationMissing, got %v", err)
	}
}

func TestValidateFlagsAuthoringMistakes(t *testing.T) {
	c := &Content{
		Enemies: map[string]EnemySpec{"basic": {MaxHealth: 10}},
		Bosses:  map[string]BossSpec{},
		Stages: []StageSpec{{
			Name: "broken",
			Waves: []WaveSpec{
				{Name: "boss_first", BossWave: true, Boss: "nobody"},
				{Name: "bad_ref", Spawns: []SpawnSpec{{Prefab: "ghost", Count: 1}}},
			},
		}},
	}
	// missing boss, boss wave not last, unknown enemy
	if got := len(c.Validate()); got != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", got, c.Validate())
	}
}

func TestWaveOutstanding(t *testing.T) {
	tests := []struct {
		name string
		wave WaveSpec
		want int
	}{
		{"empty", WaveSpec{}, 0},
		{"counts", WaveSpec{Spawns: []SpawnSpec{{Count: 3}, {Count: 2}}}, 5},
		{"boss_adds_one", WaveSpec{BossWave: true, Spawns: []SpawnSpec{{Count: 2}}}, 3},
		{"negative_ignored", WaveSpec{Spawns: []SpawnSpec{{Count: -4}}}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.wave.Outstanding(); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCleanScriptPath(t *testing.T) {
	tests := map[string]string{
		"sine":                 "scripts/sine.tengo",
		"zigzag.tengo":         "scripts/zigzag.tengo",
		"prefabs/scripts/sine": "scripts/sine.tengo",
		"scripts/zigzag.tengo": "scripts/zigzag.tengo",
	}
	for in, want := range tests {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("%s: expected %s, got %s", in, want, got)
		}
	}
	if _, err := LoadScript("sine"); err != nil {
		t.Fatalf("load embedded script: %v", err)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte("starting_lives: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetDir(dir)
	defer SetDir("prefabs")

	spec, err := LoadSpec[SettingsSpec](SettingsFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.StartingLives != 9 {
		t.Fatalf("expected disk override, got %d", spec.StartingLives)
	}
	if _, ok := ModTime(SettingsFile); !ok {
		t.Fatalf("expected mod time for disk file")
	}
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, StagesFile)
	if err := os.WriteFile(target, []byte("stages: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Changes:
		if filepath.Base(got.Path) != StagesFile {
			t.Fatalf("expected %s change, got %s", StagesFile, got.Path)
		}
		if got.Script || got.Removed {
			t.Fatalf("unexpected change flags %+v", got)
		}
		if !got.Stages() {
			t.Fatalf("stages file should affect stages")
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
}
