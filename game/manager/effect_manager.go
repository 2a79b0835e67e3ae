package manager

import (
	"time"

	"snake-deluxe/game/entity"
	"snake-deluxe/game/types"
)

// EffectManager applies power-up effects and owns the timed speed modifier.
// Time is read from the run's game clock, so expiry is a timestamp
// comparison done once per tick.
type EffectManager struct {
	duration time.Duration
}

func NewEffectManager() *EffectManager {
	return &EffectManager{
		duration: types.EffectDuration,
	}
}

// Apply runs the effect of an eaten power-up. base is the base interval of
// the difficulty selected right now.
func (em *EffectManager) Apply(kind entity.FoodKind, snake *entity.Snake, effects *entity.Effects, base, now time.Duration) {
	switch kind.Info().Effect {
	case entity.EffectSpeedBoost:
		em.startSpeed(effects, kind, BoostedInterval(base), now)
	case entity.EffectSlowMo:
		em.startSpeed(effects, kind, SlowedInterval(base), now)
	case entity.EffectShield:
		effects.Shield = true
	case entity.EffectShrink:
		snake.Shrink(types.ShrinkAmount, types.MinSnakeLength)
	case entity.EffectScoreBonus, entity.EffectNone:
		// score is credited on consumption
	}
}

// startSpeed replaces whatever modifier is active; the newest one wins
// outright, timer and magnitude both.
func (em *EffectManager) startSpeed(effects *entity.Effects, kind entity.FoodKind, interval, now time.Duration) {
	effects.Speed = &entity.SpeedModifier{
		Kind:      kind,
		Interval:  interval,
		StartedAt: now,
		Duration:  em.duration,
	}
}

// Sweep clears an expired speed modifier and reports whether it did
func (em *EffectManager) Sweep(effects *entity.Effects, now time.Duration) bool {
	if effects.Speed != nil && effects.Speed.Expired(now) {
		effects.Speed = nil
		return true
	}
	return false
}

// Interval is the tick interval in force: the active modifier's, or base
func (em *EffectManager) Interval(effects *entity.Effects, base time.Duration) time.Duration {
	if effects.Speed != nil {
		return effects.Speed.Interval
	}
	return base
}

func BoostedInterval(base time.Duration) time.Duration {
	return max(types.MinTickInterval, base*6/10)
}

func SlowedInterval(base time.Duration) time.Duration {
	return base * 3 / 2
}
