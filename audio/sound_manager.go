// Package audio plays the app's short feedback sounds.
package audio

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// SoundManager owns the speaker and a mixer that short effects are added to.
// Every Play method is a no-op until Initialize succeeds and while muted.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a sound manager. Nothing touches the audio device until Initialize.
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	log.Printf("[Audio] speaker ready at %d Hz", sampleRate)
	return nil
}

// Cleanup drops queued effects and stops using the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// SetMuted silences (or re-enables) all effects.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Muted reports whether effects are silenced.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// PlayTap plays the click used when a tap cycles the field color.
func (sm *SoundManager) PlayTap() {
	sm.play(TapSound())
}

// PlayMessage plays the chime used when an assistant reply arrives.
func (sm *SoundManager) PlayMessage() {
	sm.play(MessageSound())
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// TapSound is a short high click.
func TapSound() beep.Streamer {
	return newTone(1760, 35*time.Millisecond, 0.25, 90)
}

// MessageSound is a rising two-note chime.
func MessageSound() beep.Streamer {
	return beep.Seq(
		newTone(880, 90*time.Millisecond, 0.2, 18),
		newTone(1318.5, 140*time.Millisecond, 0.2, 14),
	)
}

// tone is a decaying sine of fixed length.
type tone struct {
	freq   float64
	amp    float64
	decay  float64 // envelope exp(-decay * t)
	pos    int
	length int
}

func newTone(freq float64, d time.Duration, amp, decay float64) *tone {
	return &tone{freq: freq, amp: amp, decay: decay, length: sampleRate.N(d)}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.length {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.length {
			return i, true
		}
		t := float64(g.pos) / float64(sampleRate)
		v := g.amp * math.Exp(-g.decay*t) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error {
	return nil
}
