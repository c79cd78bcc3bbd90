package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Memory persists each agent's latest StageResult to a dedicated JSON slot,
// overwriting any prior value. It is a last-write store, not an append log.
type Memory struct {
	dir string
}

func NewMemory(dir string) (*Memory, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create memories dir: %w", err)
	}
	return &Memory{dir: dir}, nil
}

// SlotPath returns the file backing one stage's slot.
func (m *Memory) SlotPath(stage Stage) string {
	return filepath.Join(m.dir, string(stage)+"_mem.json")
}

// Write overwrites the stage's slot with the result envelope.
func (m *Memory) Write(stage Stage, res StageResult) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s result: %w", stage, err)
	}
	if err := os.WriteFile(m.SlotPath(stage), data, 0o644); err != nil {
		return fmt.Errorf("write %s slot: %w", stage, err)
	}
	return nil
}

// Read loads the stage's latest persisted result.
func (m *Memory) Read(stage Stage) (StageResult, error) {
	data, err := os.ReadFile(m.SlotPath(stage))
	if err != nil {
		return StageResult{}, err
	}
	var res StageResult
	if err := json.Unmarshal(data, &res); err != nil {
		return StageResult{}, fmt.Errorf("decode %s slot: %w", stage, err)
	}
	return res, nil
}
