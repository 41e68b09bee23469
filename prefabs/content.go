package prefabs

import (
	"fmt"
	"path/filepath"
)

const (
	SettingsFile = "settings.yaml"
	ShipsFile    = "ships.yaml"
	EnemiesFile  = "enemies.yaml"
	BossesFile   = "bosses.yaml"
	StagesFile   = "stages.yaml"
)

// Content is every spec the game reads at startup.
type Content struct {
	Settings SettingsSpec
	Ships    ShipCatalog
	Enemies  map[string]EnemySpec
	Bosses   map[string]BossSpec
	Stages   []StageSpec
}

func LoadContent() (*Content, error) {
	settings, err := LoadSpec[SettingsSpec](SettingsFile)
	if err != nil {
		return nil, err
	}
	ships, err := LoadSpec[ShipCatalog](ShipsFile)
	if err != nil {
		return nil, err
	}
	enemies, err := LoadSpec[EnemyCatalog](EnemiesFile)
	if err != nil {
		return nil, err
	}
	bosses, err := LoadSpec[BossCatalog](BossesFile)
	if err != nil {
		return nil, err
	}
	stages, err := LoadSpec[StageList](StagesFile)
	if err != nil {
		return nil, err
	}

	c := &Content{
		Settings: settings,
		Ships:    ships,
		Enemies:  enemies.Enemies,
		Bosses:   bosses.Bosses,
		Stages:   stages.Stages,
	}
	if c.Enemies == nil {
		c.Enemies = map[string]EnemySpec{}
	}
	if c.Bosses == nil {
		c.Bosses = map[string]BossSpec{}
	}
	for name, b := range c.Bosses {
		if b.Name == "" {
			b.Name = name
			c.Bosses[name] = b
		}
	}
	return c, nil
}

// Enemy looks up an enemy prefab.
func (c *Content) Enemy(name string) (EnemySpec, error) {
	if c == nil || name == "" {
		return EnemySpec{}, fmt.Errorf("enemy %q: %w", name, ErrConfigurationMissing)
	}
	spec, ok := c.Enemies[name]
	if !ok {
		return EnemySpec{}, fmt.Errorf("enemy %q: %w", name, ErrConfigurationMissing)
	}
	return spec, nil
}

// Boss looks up a boss prefab.
func (c *Content) Boss(name string) (BossSpec, error) {
	if c == nil || name == "" {
		return BossSpec{}, fmt.Errorf("boss %q: %w", name, ErrConfigurationMissing)
	}
	spec, ok := c.Bosses[name]
	if !ok {
		return BossSpec{}, fmt.Errorf("boss %q: %w", name, ErrConfigurationMissing)
	}
	return spec, nil
}

// Validate lists authoring mistakes. None of them stop the game: missing
// prefabs turn into synthetic deaths when the wave runs.
func (c *Content) Validate() []error {
	if c == nil {
		return nil
	}
	var problems []error
	for si, stage := range c.Stages {
		for wi, wave := range stage.Waves {
			where := fmt.Sprintf("stage %d (%s) wave %d (%s)", si, stage.Name, wi, wave.Name)
			if wave.BossWave {
				if _, err := c.Boss(wave.Boss); err != nil {
					problems = append(problems, fmt.Errorf("%s: %w", where, err))
				}
				if wi != len(stage.Waves)-1 {
					problems = append(problems, fmt.Errorf("%s: boss wave is not the last wave", where))
				}
			}
			for _, spawn := range wave.Spawns {
				if spawn.Count < 0 || spawn.Interval < 0 {
					problems = append(problems, fmt.Errorf("%s: negative count or interval for %q", where, spawn.Prefab))
				}
				if _, err := c.Enemy(spawn.Prefab); err != nil {
					problems = append(problems, fmt.Errorf("%s: %w", where, err))
				}
			}
		}
	}
	for name, boss := range c.Bosses {
		if boss.Minions.PerWave > 0 {
			if _, err := c.Enemy(boss.Minions.Prefab); err != nil {
				problems = append(problems, fmt.Errorf("boss %s minions: %w", name, err))
			}
		}
	}
	return problems
}

// AffectsStages reports whether a changed file should trigger a stage
// reload.
func AffectsStages(path string) bool {
	switch filepath.Base(path) {
	case StagesFile, EnemiesFile, BossesFile:
		return true
	}
	return false
}
