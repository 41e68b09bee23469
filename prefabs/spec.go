package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/skyraid/common"
	"gopkg.in/yaml.v3"
)

var ErrConfigurationMissing = errors.New("prefabs: configuration missing")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type DropSpec struct {
	Kind   string  `yaml:"kind"`
	Chance float64 `yaml:"chance"`
}

type PickupAmounts struct {
	Health int     `yaml:"health"`
	Energy float64 `yaml:"energy"`
	Life   int     `yaml:"life"`
}

// SettingsSpec holds the global tuning knobs.
type SettingsSpec struct {
	StartingLives          int           `yaml:"starting_lives"`
	MaxLives               int           `yaml:"max_lives"`
	EnergyGainPerHit       float64       `yaml:"energy_gain_per_hit"`
	EnergyGainPerKill      float64       `yaml:"energy_gain_per_kill"`
	EnergyRegenRate        float64       `yaml:"energy_regen_rate"`
	PortalSpawnDelay       float64       `yaml:"portal_spawn_delay"`
	PickupLifetime         float64       `yaml:"pickup_lifetime"`
	RespawnInvulnerability float64       `yaml:"respawn_invulnerability"`
	PlayerSpawn            common.Vec2   `yaml:"player_spawn"`
	PortalPosition         common.Vec2   `yaml:"portal_position"`
	Drops                  []DropSpec    `yaml:"drops"`
	Pickups                PickupAmounts `yaml:"pickups"`
}

type SpecialSpec struct {
	Cost     float64 `yaml:"cost"`
	Duration float64 `yaml:"duration"`
	Cooldown float64 `yaml:"cooldown"`
	DPS      float64 `yaml:"dps"`
	Width    float64 `yaml:"width"`
}

type ShipSpec struct {
	Name           string      `yaml:"name"`
	MaxHealth      int         `yaml:"max_health"`
	MaxEnergy      float64     `yaml:"max_energy"`
	Speed          float64     `yaml:"speed"`
	FirePeriod     float64     `yaml:"fire_period"`
	BulletDamage   int         `yaml:"bullet_damage"`
	BulletSpeed    float64     `yaml:"bullet_speed"`
	BulletLifetime float64     `yaml:"bullet_lifetime"`
	Pierce         bool        `yaml:"pierce"`
	Radius         float64     `yaml:"radius"`
	Special        SpecialSpec `yaml:"special"`
}

type ShipCatalog struct {
	Default string     `yaml:"default"`
	Ships   []ShipSpec `yaml:"ships"`
}

// Ship returns the named ship, falling back to the catalog default.
func (c ShipCatalog) Ship(name string) (ShipSpec, bool) {
	if name == "" {
		name = c.Default
	}
	for _, s := range c.Ships {
		if s.Name == name {
			return s, true
		}
	}
	return ShipSpec{}, false
}

// MovementSpec picks a movement behaviour. Kind is one of straight, dive,
// patrol or script; script movers name a file under scripts/.
type MovementSpec struct {
	Kind   string             `yaml:"kind"`
	Script string             `yaml:"script"`
	Params map[string]float64 `yaml:"params"`
}

func (m MovementSpec) Param(name string, fallback float64) float64 {
	if v, ok := m.Params[name]; ok {
		return v
	}
	return fallback
}

type ShooterSpec struct {
	Period   float64 `yaml:"period"`
	Bullets  int     `yaml:"bullets"`
	Spread   float64 `yaml:"spread"`
	Damage   int     `yaml:"damage"`
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
	Aimed    bool    `yaml:"aimed"`
}

type ExplosionSpec struct {
	Radius float64 `yaml:"radius"`
	Damage int     `yaml:"damage"`
}

type EnemySpec struct {
	MaxHealth     int            `yaml:"max_health"`
	Damage        int            `yaml:"damage"`
	Speed         float64        `yaml:"speed"`
	Score         int            `yaml:"score"`
	Radius        float64        `yaml:"radius"`
	ReducedDamage bool           `yaml:"reduced_damage"`
	Movement      MovementSpec   `yaml:"movement"`
	Shooter       *ShooterSpec   `yaml:"shooter"`
	Explosion     *ExplosionSpec `yaml:"explosion"`
}

type EnemyCatalog struct {
	Enemies map[string]EnemySpec `yaml:"enemies"`
}

type PatternSegmentSpec struct {
	Kind     string             `yaml:"kind"`
	Duration float64            `yaml:"duration"`
	Params   map[string]float64 `yaml:"params"`
}

func (p PatternSegmentSpec) Param(name string, fallback float64) float64 {
	if v, ok := p.Params[name]; ok {
		return v
	}
	return fallback
}

type BossFireSpec struct {
	Period   float64 `yaml:"period"`
	Damage   int     `yaml:"damage"`
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
}

type BossMinionSpec struct {
	Prefab  string        `yaml:"prefab"`
	Period  float64       `yaml:"period"`
	PerWave int           `yaml:"per_wave"`
	Points  []common.Vec2 `yaml:"points"`
}

type EnrageSpec struct {
	Threshold  float64 `yaml:"threshold"`
	Multiplier float64 `yaml:"multiplier"`
}

type BossSpec struct {
	Name      string               `yaml:"name"`
	MaxHealth int                  `yaml:"max_health"`
	Score     int                  `yaml:"score"`
	Damage    int                  `yaml:"damage"`
	MoveSpeed float64              `yaml:"move_speed"`
	Bounds    common.Vec2          `yaml:"bounds"`
	Radius    float64              `yaml:"radius"`
	Fire      BossFireSpec         `yaml:"fire"`
	Minions   BossMinionSpec       `yaml:"minions"`
	Enrage    EnrageSpec           `yaml:"enrage"`
	Pattern   []PatternSegmentSpec `yaml:"pattern"`
}

type BossCatalog struct {
	Bosses map[string]BossSpec `yaml:"bosses"`
}

// SpawnSpec emits Count actors of Prefab, one every Interval seconds.
// A nil SpawnPoint means a random stage spawn point.
type SpawnSpec struct {
	Prefab     string       `yaml:"prefab"`
	Count      int          `yaml:"count"`
	Interval   float64      `yaml:"interval"`
	SpawnPoint *common.Vec2 `yaml:"spawn_point"`
}

type WaveSpec struct {
	Name            string       `yaml:"name"`
	Spawns          []SpawnSpec  `yaml:"spawns"`
	DelayBeforeNext float64      `yaml:"delay_before_next"`
	BossWave        bool         `yaml:"boss_wave"`
	Boss            string       `yaml:"boss"`
	BossSpawn       *common.Vec2 `yaml:"boss_spawn"`
}

// Outstanding is the number of actors the wave must see resolved.
func (w WaveSpec) Outstanding() int {
	n := 0
	for _, s := range w.Spawns {
		if s.Count > 0 {
			n += s.Count
		}
	}
	if w.BossWave {
		n++
	}
	return n
}

type StageSpec struct {
	Name        string        `yaml:"name"`
	Scene       string        `yaml:"scene"`
	SpawnPoints []common.Vec2 `yaml:"spawn_points"`
	Waves       []WaveSpec    `yaml:"waves"`
}

type StageList struct {
	Stages []StageSpec `yaml:"stages"`
}
