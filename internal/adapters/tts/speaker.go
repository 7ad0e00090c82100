// Package tts reads text aloud by shelling out to the system speech engine:
// `say` on darwin, `espeak-ng` (falling back to `espeak`) elsewhere.
package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Speaker implements secondary.Speaker over an external TTS binary.
type Speaker struct {
	// binary overrides engine detection when non-empty.
	binary string
	voice  string
}

// NewSpeaker returns a speaker using the configured voice ("" for the engine
// default).
func NewSpeaker(voice string) *Speaker {
	return &Speaker{voice: voice}
}

// engine picks the TTS binary for the current platform.
func (s *Speaker) engine() (string, error) {
	if s.binary != "" {
		return s.binary, nil
	}
	if runtime.GOOS == "darwin" {
		return "say", nil
	}
	for _, candidate := range []string{"espeak-ng", "espeak"} {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no TTS engine found (install espeak-ng)")
}

// Speak runs the engine synchronously. There is no cancellation beyond the
// context: killing the context kills the process.
func (s *Speaker) Speak(ctx context.Context, text string) error {
	engine, err := s.engine()
	if err != nil {
		return err
	}

	// Both say and espeak take -v for voice selection.
	var args []string
	if s.voice != "" {
		args = append(args, "-v", s.voice)
	}

	cmd := exec.CommandContext(ctx, engine, args...)
	cmd.Stdin = bytes.NewBufferString(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w (%s)", engine, err, stderr.String())
	}
	return nil
}
