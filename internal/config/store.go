// internal/config/store.go
package config

// View: доступ только на чтение. Системы получают снимок по значению
// и не могут изменить общую конфигурацию.
type View interface {
	Snapshot() Config
}

// Tunables: параметры качества, которые меняет только контроллер.
type Tunables struct {
	ParticleCount       int
	MaxRockets          int
	SecondaryEnabled    bool
	SecondaryChildCount int
	EnableGlow          bool
	ShowTrails          bool
	ShowStars           bool
}

// Store владеет текущей конфигурацией движка.
// Меняется только между тиками: хостом через Apply и контроллером через Tuner.
type Store struct {
	cfg Config
}

func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Snapshot возвращает копию текущей конфигурации
func (s *Store) Snapshot() Config {
	return s.cfg
}

// Apply применяет патч целиком или не применяет совсем.
func (s *Store) Apply(p Patch) error {
	next, err := p.ApplyTo(s.cfg)
	if err != nil {
		return err
	}
	s.cfg = next
	return nil
}

// SetTheme и SetShape не проверяют имя: это делает каталог defs.
func (s *Store) SetTheme(name string) { s.cfg.Theme = name }
func (s *Store) SetShape(name string) { s.cfg.Shape = name }

// Tuner выдаёт единственную точку записи для параметров качества.
func (s *Store) Tuner() *Tuner {
	return &Tuner{store: s}
}

// Tuner: ручка контроллера качества
type Tuner struct {
	store *Store
}

func (t *Tuner) Tunables() Tunables {
	c := &t.store.cfg
	return Tunables{
		ParticleCount:       c.ParticleCount,
		MaxRockets:          c.MaxRockets,
		SecondaryEnabled:    c.SecondaryEnabled,
		SecondaryChildCount: c.SecondaryChildCount,
		EnableGlow:          c.EnableGlow,
		ShowTrails:          c.ShowTrails,
		ShowStars:           c.ShowStars,
	}
}

func (t *Tuner) SetTunables(v Tunables) {
	c := &t.store.cfg
	c.ParticleCount = v.ParticleCount
	c.MaxRockets = v.MaxRockets
	c.SecondaryEnabled = v.SecondaryEnabled
	c.SecondaryChildCount = v.SecondaryChildCount
	c.EnableGlow = v.EnableGlow
	c.ShowTrails = v.ShowTrails
	c.ShowStars = v.ShowStars
}

// Limits: границы, в которых контроллер двигает бюджет частиц
func (t *Tuner) Limits() (minParticles, targetFPS int) {
	return t.store.cfg.MinParticleCount, t.store.cfg.TargetFPS
}
