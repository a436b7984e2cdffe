package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is the sink the ambient controller plays into
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// SpeakerOutput plays through the system speaker
type SpeakerOutput struct{}

func (SpeakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (SpeakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }

func (SpeakerOutput) Lock() { speaker.Lock() }

func (SpeakerOutput) Unlock() { speaker.Unlock() }

func (SpeakerOutput) Close() { speaker.Close() }
