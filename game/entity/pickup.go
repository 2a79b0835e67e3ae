package entity

import (
	"snake-deluxe/game/types"
)

type FoodKind int

const (
	Normal FoodKind = iota
	SpeedBoost
	SlowMo
	Shield
	ScoreBonus
	Shrink
)

// PowerUpKinds lists every non-normal kind, in spawn table order
var PowerUpKinds = []FoodKind{SpeedBoost, SlowMo, Shield, ScoreBonus, Shrink}

type Effect string

const (
	EffectNone       Effect = "none"
	EffectSpeedBoost Effect = "speed_boost"
	EffectSlowMo     Effect = "slow_mo"
	EffectShield     Effect = "shield"
	EffectScoreBonus Effect = "score_bonus"
	EffectShrink     Effect = "shrink"
)

// KindInfo describes how a pickup kind looks and what eating it does
type KindInfo struct {
	Name      string
	Color     Color
	Score     int
	Symbol    string
	Effect    Effect
	Temporary bool
}

var kindTable = map[FoodKind]KindInfo{
	Normal:     {Name: "NORMAL", Color: Color{0xff, 0xeb, 0x3b}, Score: 10, Effect: EffectNone},
	SpeedBoost: {Name: "SPEED_BOOST", Color: Color{0x21, 0x96, 0xf3}, Score: 20, Symbol: "⚡", Effect: EffectSpeedBoost, Temporary: true},
	SlowMo:     {Name: "SLOW_MO", Color: Color{0x7e, 0x57, 0xc2}, Score: 5, Symbol: "🐢", Effect: EffectSlowMo, Temporary: true},
	Shield:     {Name: "SHIELD", Color: Color{0x4c, 0xaf, 0x50}, Score: 15, Symbol: "🛡", Effect: EffectShield},
	ScoreBonus: {Name: "SCORE_BONUS", Color: Color{0xff, 0x98, 0x00}, Score: 50, Symbol: "💰", Effect: EffectScoreBonus},
	Shrink:     {Name: "SHRINK", Color: Color{0xe9, 0x1e, 0x63}, Score: 0, Symbol: "🤏", Effect: EffectShrink},
}

func (k FoodKind) Info() KindInfo {
	if info, ok := kindTable[k]; ok {
		return info
	}
	return kindTable[Normal]
}

func (k FoodKind) String() string {
	return k.Info().Name
}

func (k FoodKind) IsPowerUp() bool {
	return k != Normal
}

// Pickup is the single consumable item on the grid. A power-up takes the
// place of normal food rather than sitting next to it.
type Pickup struct {
	Pos  types.Point
	Kind FoodKind
}

func (p Pickup) IsPowerUp() bool {
	return p.Kind.IsPowerUp()
}

func (p Pickup) Score() int {
	return p.Kind.Info().Score
}
