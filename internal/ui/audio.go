package ui

import "github.com/gordonklaus/portaudio"

// audio drains the console's APU sample channel into a default
// stereo output stream.
type audio struct {
	stream  *portaudio.Stream
	channel chan float32
}

func newAudio() *audio {
	return &audio{channel: make(chan float32, 4096)}
}

func (a *audio) callback(out []float32) {
	for i := range out {
		select {
		case v := <-a.channel:
			out[i] = v * 0.05
		default:
			out[i] = 0
		}
	}
}

func (a *audio) start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, 44100, 0, a.callback)
	if err != nil {
		return err
	}
	if err := stream.Start(); err != nil {
		return err
	}
	a.stream = stream
	return nil
}

func (a *audio) terminate() {
	a.stream.Stop()
	a.stream.Close()
	portaudio.Terminate()
}
