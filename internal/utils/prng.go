// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// Rand: обёртка над стандартным генератором случайных чисел Go,
// которая позволяет использовать предсказуемый (seeded) рандом во всей симуляции.
type Rand struct {
	rng *rand.Rand
}

// NewRand создает новый генератор с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// Intn возвращает случайное целое число в диапазоне [0, n).
func (r *Rand) Intn(n int) int {
	return r.rng.Intn(n)
}

// Float64 возвращает случайное число с плавающей точкой в диапазоне [0.0, 1.0).
func (r *Rand) Float64() float64 {
	return r.rng.Float64()
}

// Range возвращает случайное число в диапазоне [min, max).
func (r *Rand) Range(min, max float64) float64 {
	return r.rng.Float64()*(max-min) + min
}

// Chance возвращает true с вероятностью p.
func (r *Rand) Chance(p float64) bool {
	return r.rng.Float64() < p
}
