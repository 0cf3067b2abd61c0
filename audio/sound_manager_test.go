package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain reads a streamer to the end and returns the sample count and peak amplitude.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestTapSoundLength(t *testing.T) {
	n, peak := drain(TapSound())
	if want := sampleRate.N(35 * time.Millisecond); n != want {
		t.Fatalf("tap length = %d samples, want %d", n, want)
	}
	if peak == 0 || peak > 0.25 {
		t.Fatalf("tap peak = %v, want (0, 0.25]", peak)
	}
}

func TestMessageSoundPlaysBothNotes(t *testing.T) {
	n, _ := drain(MessageSound())
	if want := sampleRate.N(90*time.Millisecond) + sampleRate.N(140*time.Millisecond); n != want {
		t.Fatalf("chime length = %d samples, want %d", n, want)
	}
}

func TestPlayBeforeInitializeIsNoop(t *testing.T) {
	sm := NewSoundManager()
	sm.PlayTap()
	sm.PlayMessage()
	sm.Cleanup()
	if sm.mixer.Len() != 0 {
		t.Fatalf("mixer has %d streamers before Initialize", sm.mixer.Len())
	}
	sm.SetMuted(true)
	if !sm.Muted() {
		t.Fatal("SetMuted(true) not reported")
	}
}
