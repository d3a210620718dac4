package test

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/stretchr/testify/suite"

	"workshop-lab/ai"
	"workshop-lab/configstore"
	"workshop-lab/engine"
	"workshop-lab/moderation"
	"workshop-lab/repositories"
	"workshop-lab/services"
	"workshop-lab/sink"

	db "github.com/mama165/sdk-go/database"
)

const fixtureConfig = `workshop:
  name: Retro
  topic: last sprint
  prompt: keep it constructive
participants:
  - name: Dana
    is_facilitator: true
    background: scrum master
  - name: Alice
  - name: Bob
  - name: Clara
`

// BaseSuite assembles the full stack in-process: config store, badger
// and bluge storage, moderation, advisor and the command service. Only
// the Ollama daemon is external, and it is optional.
type BaseSuite struct {
	suite.Suite
	Config  Config
	Service *services.WorkshopService
	Repo    *repositories.TranscriptRepository

	cleanup func()
}

func (s *BaseSuite) SetupTest() {
	cfg, err := LoadConfig()
	s.Require().NoError(err)
	s.Config = cfg

	_, log, badgerDB, blugeWriter, err := db.SetupBenchmark(s.T().TempDir())
	s.Require().NoError(err)
	s.cleanup = func() { db.CleanupDB(badgerDB, blugeWriter) }

	configDir := s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(configDir, "retro.yaml"), []byte(fixtureConfig), 0o644))
	store := configstore.NewStore(configDir, configstore.NewValidator())

	moderator, err := moderation.NewModerator(strings.Split(cfg.CensoredWords, ","), '*')
	s.Require().NoError(err)

	host := cfg.AdvisorHost
	if host == "" {
		// Nothing listens here; advisory calls fail fast and the
		// round-robin fallback takes over.
		host = "http://127.0.0.1:1"
	}
	advisor := ai.NewAdvisor(ai.NewOllamaClient(host, cfg.AdvisorModel, cfg.AdvisorTimeout), log)

	selector := engine.NewTurnSelector(advisor, log, 20)
	eng := engine.NewEngine(log, selector, advisor, &moderator)

	s.Repo = repositories.NewTranscriptRepository(badgerDB, blugeWriter, log)
	eng.RegisterSink(sink.NewDiskSink(s.Repo, log))

	s.Service = services.NewWorkshopService(eng, store, s.Repo, log)
}

func (s *BaseSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

// exec runs one command line and fails the suite on error.
func (s *BaseSuite) exec(line string) services.Response {
	resp, err := s.Service.Execute(context.Background(), line)
	s.Require().NoError(err, line)
	return resp
}
