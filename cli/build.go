package cli

import (
	"fmt"
	"time"

	"storycraft/agent"
	"storycraft/config"
	"storycraft/llm"
	"storycraft/logbook"
	"storycraft/pipeline"
	"storycraft/store"
)

// app bundles the assembled components behind each command.
type app struct {
	cfg          *config.Config
	orchestrator *pipeline.Orchestrator
	log          *logbook.Logbook
}

// buildApp wires config, model client, agents, cache, and orchestrator. A
// missing credential is not an assembly error: the caller is built without a
// completer and fast-fails at invocation time.
func buildApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var completer llm.Completer
	switch {
	case useMock:
		completer = llm.MockClient{}
	case cfg.LLM.APIKey != "":
		client, err := llm.NewOpenAIClient(llm.Settings{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		completer = client
	}

	caller := llm.NewCaller(completer, cfg.LLM.MaxRetries, time.Duration(cfg.LLM.TimeoutSeconds)*time.Second)

	mem, err := agent.NewMemory(cfg.MemoriesDir)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(cfg.LogFile)
	if err != nil {
		return nil, err
	}

	var runs pipeline.RunStore
	if cfg.Cache.Driver == "sqlite" {
		sqlStore, err := store.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		runs = sqlStore
	} else {
		runs = pipeline.NewMemoryStore()
	}

	agents := agent.NewSet(caller, cfg.LLM.Model, mem, lb)
	return &app{
		cfg:          cfg,
		orchestrator: pipeline.NewOrchestrator(agents, runs),
		log:          lb,
	}, nil
}
