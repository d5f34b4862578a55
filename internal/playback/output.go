// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package playback

// Output represents an audio output device for decoded PCM.
type Output interface {
	// Open initializes the output device for the given format.
	Open(sampleRate, channels int) error

	// Write outputs audio samples, blocking until accepted.
	Write(samples []int16) error

	// SetVolume sets software playback volume, 0-100.
	SetVolume(volume int)

	// Close releases output resources.
	Close() error
}
