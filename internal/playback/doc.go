// ABOUTME: Audio output package for playing decoded SEA audio
// ABOUTME: Provides the Output interface and an oto-backed implementation
// Package playback plays already-decoded int16 PCM through the local
// sound device. It never touches the SEA container or codec — callers
// decode first (via pkg/sea) and feed the resulting samples here.
//
// Example:
//
//	out := playback.NewOto()
//	err := out.Open(44100, 1)
//	err = out.Write(samples)
package playback
