package audio

import (
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Speaker synthesizes cues on the local sound device.
type Speaker struct {
	open bool
}

// NewSpeaker creates a speaker backend.
func NewSpeaker() *Speaker {
	return &Speaker{}
}

// Init opens the sound device.
func (s *Speaker) Init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	s.open = true
	return nil
}

// Play synthesizes and queues a cue.
func (s *Speaker) Play(c Cue) {
	streamer := cueStreamer(c)
	if streamer == nil {
		return
	}
	speaker.Play(streamer)
}

// Close releases the sound device if Init opened it.
func (s *Speaker) Close() {
	if !s.open {
		return
	}
	speaker.Close()
	s.open = false
}

// cueStreamer builds the sound for a cue.
func cueStreamer(c Cue) beep.Streamer {
	switch c {
	case CueShoot:
		return tone(880, 60*time.Millisecond)
	case CueExplosion:
		return beep.Take(sampleRate.N(250*time.Millisecond), newNoise(0.3))
	case CueGameOver:
		return beep.Seq(
			tone(440, 200*time.Millisecond),
			tone(330, 200*time.Millisecond),
			tone(220, 400*time.Millisecond),
		)
	default:
		return nil
	}
}

// tone returns a sine tone of the given frequency and duration,
// or silence if the generator rejects the frequency.
func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(sampleRate.N(d))
	}
	return beep.Take(sampleRate.N(d), sine)
}

// noise is a white-noise streamer with a linear fade-out.
type noise struct {
	amp   float64
	decay float64
	rng   *rand.Rand
}

func newNoise(amp float64) *noise {
	return &noise{
		amp:   amp,
		decay: amp / float64(sampleRate.N(250*time.Millisecond)),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Stream implements beep.Streamer.
func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := (n.rng.Float64()*2 - 1) * n.amp
		samples[i][0] = v
		samples[i][1] = v
		if n.amp > 0 {
			n.amp -= n.decay
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (n *noise) Err() error {
	return nil
}
