// Package wire provides dependency injection for the mull application.
// It creates singleton services with lazy initialization.
package wire

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/example/mull/internal/adapters/ai"
	"github.com/example/mull/internal/adapters/bitbucket"
	"github.com/example/mull/internal/adapters/filesystem"
	"github.com/example/mull/internal/adapters/gitrepo"
	"github.com/example/mull/internal/adapters/index"
	"github.com/example/mull/internal/adapters/jsonstore"
	"github.com/example/mull/internal/adapters/tts"
	"github.com/example/mull/internal/adapters/web"
	"github.com/example/mull/internal/app"
	"github.com/example/mull/internal/config"
	"github.com/example/mull/internal/ports/primary"
	"github.com/example/mull/internal/ports/secondary"
)

var (
	cfg           *config.Config
	thoughtsDir   string
	matrixStore   secondary.MatrixStore
	thoughtStore  secondary.ThoughtStore
	thoughtIndex  secondary.ThoughtIndex
	gitClient     secondary.GitClient
	todoService   primary.TodoService
	thoughtSvc    primary.ThoughtService
	convertSvc    primary.ConvertService
	clipSvc       primary.ClipService
	prSvc         primary.PullRequestService
	speakSvc      primary.SpeakService
	once          sync.Once
)

// ThoughtsDir resolves the thoughts directory: $MULL_THOUGHTS_DIR, falling
// back to ~/thoughts.
func ThoughtsDir() string {
	once.Do(initServices)
	return thoughtsDir
}

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// TodoService returns the singleton TodoService instance.
func TodoService() primary.TodoService {
	once.Do(initServices)
	return todoService
}

// ThoughtService returns the singleton ThoughtService instance.
func ThoughtService() primary.ThoughtService {
	once.Do(initServices)
	return thoughtSvc
}

// ConvertService returns the singleton ConvertService instance.
func ConvertService() primary.ConvertService {
	once.Do(initServices)
	return convertSvc
}

// ClipService returns the singleton ClipService instance.
func ClipService() primary.ClipService {
	once.Do(initServices)
	return clipSvc
}

// PullRequestService returns the singleton PullRequestService instance.
func PullRequestService() primary.PullRequestService {
	once.Do(initServices)
	return prSvc
}

// SpeakService returns the singleton SpeakService instance.
func SpeakService() primary.SpeakService {
	once.Do(initServices)
	return speakSvc
}

// GitClient returns the git wrapper for the thoughts directory.
func GitClient() secondary.GitClient {
	once.Do(initServices)
	return gitClient
}

// Index returns the full-text index, or nil when it could not be opened.
func Index() secondary.ThoughtIndex {
	once.Do(initServices)
	return thoughtIndex
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	thoughtsDir = resolveThoughtsDir()

	var err error
	cfg, err = config.Load(thoughtsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.Default()
	}

	// Secondary adapters.
	matrixStore = jsonstore.New(thoughtsDir, os.Stderr)
	thoughtStore = filesystem.NewThoughtStore(thoughtsDir)
	gitClient = gitrepo.New()

	// The index is derived state; an open failure degrades search to a
	// directory scan instead of blocking the CLI.
	idx, err := index.Open(filepath.Join(thoughtsDir, ".mull", "index.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: full-text index unavailable: %v\n", err)
		thoughtIndex = nil
	} else {
		thoughtIndex = idx
	}

	fetcher := web.NewReader(&http.Client{Timeout: 30 * time.Second})
	summarizer := ai.New(os.Getenv("OPENAI_API_KEY"), cfg.AIModel)
	speaker := tts.NewSpeaker(cfg.Voice)
	prClient := bitbucket.New(&http.Client{Timeout: 30 * time.Second})

	// Services (primary ports implementation).
	todoService = app.NewTodoService(matrixStore)
	thoughtSvc = app.NewThoughtService(thoughtStore, thoughtIndex)
	convertSvc = app.NewConvertService(todoService, matrixStore, thoughtStore)
	clipSvc = app.NewClipService(fetcher, summarizer, thoughtStore, os.Stderr)
	prSvc = app.NewPullRequestService(prClient, thoughtStore)
	speakSvc = app.NewSpeakService(thoughtStore, matrixStore, speaker)
}

func resolveThoughtsDir() string {
	if dir := os.Getenv("MULL_THOUGHTS_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "thoughts"
	}
	return filepath.Join(home, "thoughts")
}
