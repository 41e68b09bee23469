package hud

import "sync"

// Notifier receives presentation updates from the running session. Calls
// arrive on the game loop goroutine.
type Notifier interface {
	HealthChanged(current, max int)
	EnergyChanged(current, max float64)
	LivesChanged(current int)
	ScoreChanged(score, high int)
	BossHealthChanged(fraction float64, visible bool)
	WaveStarted(stage, wave int, name string)
	Message(text string)
	Victory(score int)
	GameOver(score int)
}

type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseVictory  Phase = "victory"
	PhaseGameOver Phase = "game_over"
)

// Snapshot is everything a HUD draws.
type Snapshot struct {
	Health     int     `json:"health"`
	MaxHealth  int     `json:"max_health"`
	Energy     float64 `json:"energy"`
	MaxEnergy  float64 `json:"max_energy"`
	Lives      int     `json:"lives"`
	Score      int     `json:"score"`
	HighScore  int     `json:"high_score"`
	BossHealth float64 `json:"boss_health"`
	BossActive bool    `json:"boss_active"`
	Stage      int     `json:"stage"`
	Wave       int     `json:"wave"`
	WaveName   string  `json:"wave_name"`
	Message    string  `json:"message,omitempty"`
	Phase      Phase   `json:"phase"`
}

// State is a Notifier that remembers the latest values.
type State struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewState() *State {
	return &State{snap: Snapshot{Phase: PhasePlaying}}
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *State) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snap)
	s.mu.Unlock()
}

func (s *State) HealthChanged(current, max int) {
	s.update(func(p *Snapshot) { p.Health, p.MaxHealth = current, max })
}

func (s *State) EnergyChanged(current, max float64) {
	s.update(func(p *Snapshot) { p.Energy, p.MaxEnergy = current, max })
}

func (s *State) LivesChanged(current int) {
	s.update(func(p *Snapshot) { p.Lives = current })
}

func (s *State) ScoreChanged(score, high int) {
	s.update(func(p *Snapshot) { p.Score, p.HighScore = score, high })
}

func (s *State) BossHealthChanged(fraction float64, visible bool) {
	s.update(func(p *Snapshot) { p.BossHealth, p.BossActive = fraction, visible })
}

func (s *State) WaveStarted(stage, wave int, name string) {
	s.update(func(p *Snapshot) {
		p.Stage, p.Wave, p.WaveName = stage, wave, name
		p.Phase = PhasePlaying
	})
}

func (s *State) Message(text string) {
	s.update(func(p *Snapshot) { p.Message = text })
}

func (s *State) Victory(score int) {
	s.update(func(p *Snapshot) { p.Phase, p.Score = PhaseVictory, score })
}

func (s *State) GameOver(score int) {
	s.update(func(p *Snapshot) { p.Phase, p.Score = PhaseGameOver, score })
}

// Fanout forwards every notification to each of its notifiers in order.
type Fanout []Notifier

func (f Fanout) HealthChanged(current, max int) {
	for _, n := range f {
		n.HealthChanged(current, max)
	}
}

func (f Fanout) EnergyChanged(current, max float64) {
	for _, n := range f {
		n.EnergyChanged(current, max)
	}
}

func (f Fanout) LivesChanged(current int) {
	for _, n := range f {
		n.LivesChanged(current)
	}
}

func (f Fanout) ScoreChanged(score, high int) {
	for _, n := range f {
		n.ScoreChanged(score, high)
	}
}

func (f Fanout) BossHealthChanged(fraction float64, visible bool) {
	for _, n := range f {
		n.BossHealthChanged(fraction, visible)
	}
}

func (f Fanout) WaveStarted(stage, wave int, name string) {
	for _, n := range f {
		n.WaveStarted(stage, wave, name)
	}
}

func (f Fanout) Message(text string) {
	for _, n := range f {
		n.Message(text)
	}
}

func (f Fanout) Victory(score int) {
	for _, n := range f {
		n.Victory(score)
	}
}

func (f Fanout) GameOver(score int) {
	for _, n := range f {
		n.GameOver(score)
	}
}
