// internal/entity/world.go
package entity

import (
	"go-fireworks/internal/component"
	"go-fireworks/internal/config"
	"go-fireworks/pkg/pool"
)

// World: всё живое состояние шоу: пулы частиц и ракет, время и ветер.
// Живые ракеты пула и есть коллекция активных эмиттеров.
type World struct {
	Time   float64 // фаза ветра, растёт на WindStep за тик
	Ticks  uint64
	Wind   float64
	Width  float64
	Height float64

	Particles *pool.Pool[*component.Particle]
	Rockets   *pool.Pool[*component.Rocket]
}

func NewWorld(width, height float64, cfg config.Config) *World {
	return &World{
		Width:     width,
		Height:    height,
		Particles: pool.New(component.NewParticle, cfg.PoolSize, cfg.MaxParticles),
		Rockets:   pool.New(component.NewRocket, config.RocketPoolSize, 0),
	}
}

// Warm догоняет начальную ёмкость пулов порцией за тик
func (w *World) Warm() {
	w.Particles.Warm(config.PoolWarmBatch)
	w.Rockets.Warm(config.PoolWarmBatch)
}

// Clear возвращает в пулы все живые объекты. Вызывается только между тиками.
func (w *World) Clear() {
	w.Particles.ReleaseAll()
	w.Rockets.ReleaseAll()
}
