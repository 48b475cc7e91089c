// Package speakerout plays sound effects through the system audio device.
package speakerout

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// bufferTime is the speaker latency traded for fewer underruns.
const bufferTime = 100 * time.Millisecond

// Speaker is the process-wide audio device. speaker.Init may only succeed once
// per process, so Open hands out the same instance every time.
type Speaker struct{}

var (
	once    sync.Once
	dev     *Speaker
	openErr error
)

// Open initialises the audio device at rate. It fails on machines without a
// usable device; callers are expected to fall back to silence.
func Open(rate beep.SampleRate) (*Speaker, error) {
	once.Do(func() {
		if err := speaker.Init(rate, rate.N(bufferTime)); err != nil {
			openErr = fmt.Errorf("speakerout: init: %w", err)
			return
		}
		dev = &Speaker{}
	})
	return dev, openErr
}

// Play queues streamers on the device mixer and returns at once.
func (s *Speaker) Play(streamers ...beep.Streamer) {
	speaker.Play(streamers...)
}

// Stop drops everything still playing.
func (s *Speaker) Stop() {
	speaker.Clear()
}
