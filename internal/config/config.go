// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1280
	ScreenHeight = 800
	MaxDeltaTime = 0.06

	ParticlePoolCeiling = 6000 // жёсткий предел пула частиц
	RocketPoolSize      = 20
	PoolWarmBatch       = 50

	CoreTrailLength   = 8
	RocketTrailLength = 5

	ExplosionJitter  = 20   // ± к базовому числу частиц взрыва
	CoreFraction     = 0.15 // доля core-частиц
	MinCoreParticles = 10
	ExplosionSpeedK  = 0.9

	SecondaryBaseSpeed = 3.2

	SparkChance = 0.4
	SparkScale  = 0.3
	SparkFadeK  = 3.0

	WindStep      = 0.01
	WindAmplitude = 0.2
	WindNoise     = 0.05
	WindFactor    = 0.05 // доля ветра, которая доходит до vx не-core частиц

	LaunchSpread     = 50.0 // разброс точки старта ракеты по X
	FirstAutoLaunch  = 1.0  // секунд до первого автозапуска
	DefaultFadeSpeed = 0.015

	StarLayerCount = 6
	StarSkyRatio   = 0.7

	// Пороги контроллера качества относительно целевого FPS
	DegradeMargin      = 2
	RecoverMargin      = 3
	BudgetMargin       = 5
	BudgetStepDown     = 10
	BudgetStepUp       = 3
	DegradeWindows     = 3
	RecoverWindows     = 2
	DegradedMinRockets = 4
	DegradedChildCap   = 12
	MaxMeasuredRate    = 1000.0 // потолок Rate, когда кадр почти ничего не стоит

	// Пороги упрощённого рендера
	HighLoadParticles = 1000
	RenderStep2Above  = 1200
	RenderStep4Above  = 2000
	CullMargin        = 20
)

var (
	BackgroundColor    = color.RGBA{0, 4, 40, 255}
	BackgroundAlpha    = float32(0.35)
	HorizonGlowColor   = color.RGBA{10, 20, 60, 255}
	StarColor          = color.RGBA{255, 255, 255, 255}
	SkylineColor       = color.RGBA{2, 2, 10, 255}
	WindowLightColor   = color.RGBA{253, 251, 211, 255}
	RocketColor        = color.RGBA{255, 215, 0, 255}
	RocketTrailColor   = color.RGBA{255, 248, 220, 255}
	SparkColor         = color.RGBA{255, 170, 0, 255}
	HotWhite           = color.RGBA{255, 255, 255, 255}
	NormalStateColor   = color.RGBA{70, 180, 90, 220}
	DegradedStateColor = color.RGBA{220, 60, 60, 220}
)
