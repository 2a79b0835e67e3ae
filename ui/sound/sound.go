package sound

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"snake-deluxe/game"
)

const (
	sampleRate = beep.SampleRate(44100)
	gain       = -0.8
)

// Tone is a short sine blip
type Tone struct {
	Freq     float64
	Duration time.Duration
}

// ToneFor picks the cue for a set of events; the most significant event
// wins
func ToneFor(events game.Events) (Tone, bool) {
	switch {
	case events.Has(game.EventGameOver):
		return Tone{Freq: 110, Duration: 400 * time.Millisecond}, true
	case events.Has(game.EventShieldBroken):
		return Tone{Freq: 220, Duration: 150 * time.Millisecond}, true
	case events.Has(game.EventPowerUp):
		return Tone{Freq: 880, Duration: 120 * time.Millisecond}, true
	case events.Has(game.EventAte):
		return Tone{Freq: 660, Duration: 50 * time.Millisecond}, true
	case events.Has(game.EventEffectExpired):
		return Tone{Freq: 330, Duration: 80 * time.Millisecond}, true
	}
	return Tone{}, false
}

// Player plays event cues through the speaker. It is a game.Presenter.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) Present(snap game.Snapshot) {
	if tone, ok := ToneFor(snap.Events); ok {
		p.Play(tone)
	}
}

func (p *Player) Play(tone Tone) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	sine, err := generators.SineTone(sampleRate, tone.Freq)
	if err != nil {
		log.Printf("Warning: tone %.0fHz: %v", tone.Freq, err)
		return
	}
	speaker.Lock()
	p.mixer.Add(&effects.Gain{
		Streamer: beep.Take(sampleRate.N(tone.Duration), sine),
		Gain:     gain,
	})
	speaker.Unlock()
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
