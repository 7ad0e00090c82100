package app

import (
	"context"
	"fmt"
	"strings"

	todocore "github.com/example/mull/internal/core/todo"
	thoughtcore "github.com/example/mull/internal/core/thought"
	"github.com/example/mull/internal/ports/secondary"
)

// SpeakServiceImpl reads thoughts and todos aloud. Markdown is flattened to
// speakable prose first so the engine does not read syntax characters.
type SpeakServiceImpl struct {
	thoughts secondary.ThoughtStore
	matrix   secondary.MatrixStore
	speaker  secondary.Speaker
}

// NewSpeakService creates a SpeakService.
func NewSpeakService(thoughts secondary.ThoughtStore, matrix secondary.MatrixStore, speaker secondary.Speaker) *SpeakServiceImpl {
	return &SpeakServiceImpl{thoughts: thoughts, matrix: matrix, speaker: speaker}
}

// SpeakThought reads a thought file aloud.
func (s *SpeakServiceImpl) SpeakThought(ctx context.Context, path string) error {
	thought, err := s.thoughts.Read(ctx, path)
	if err != nil {
		return err
	}
	text := thoughtcore.Speakable(thought.Body)
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to speak in %s", path)
	}
	return s.speaker.Speak(ctx, text)
}

// SpeakTodo reads a todo item aloud: title, then description.
func (s *SpeakServiceImpl) SpeakTodo(ctx context.Context, ref string) error {
	m, err := s.matrix.Load(ctx)
	if err != nil {
		return err
	}
	id, err := resolveRef(m, ref)
	if err != nil {
		return err
	}
	item, _, _ := m.Find(id)
	if item == nil {
		return fmt.Errorf("%w: %s", todocore.ErrNotFound, ref)
	}

	text := item.Title
	if item.Description != "" {
		text += ". " + item.Description
	}
	return s.speaker.Speak(ctx, thoughtcore.Speakable(text))
}
