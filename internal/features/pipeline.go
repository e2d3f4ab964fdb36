package features

import (
	"fmt"
	"log"
	"path/filepath"
)

// Stage names one pipeline step.
type Stage string

const (
	StageExpand     Stage = "expand"
	StageSplit      Stage = "split"
	StageStagger    Stage = "stagger"
	StagePreprocess Stage = "preprocess"
)

// Stages lists the pipeline steps in execution order.
var Stages = []Stage{StageExpand, StageSplit, StageStagger, StagePreprocess}

// Stage file names. Each stage reads its predecessor's file and writes its
// own, so stages can be re-run individually.
const (
	RawFile        = "team_stats.csv"
	ExpandFile     = "expanded_team_stats.csv"
	SplitFile      = "expanded_split_team_stats.csv"
	StaggerFile    = "staggered_team_stats.csv"
	PreprocessFile = "preprocessed_team_stats.csv"
)

var stageInput = map[Stage]string{
	StageExpand:     RawFile,
	StageSplit:      ExpandFile,
	StageStagger:    SplitFile,
	StagePreprocess: StaggerFile,
}

var stageOutput = map[Stage]string{
	StageExpand:     ExpandFile,
	StageSplit:      SplitFile,
	StageStagger:    StaggerFile,
	StagePreprocess: PreprocessFile,
}

// Pipeline runs the transformation stages over CSV stage files in Dir.
// Resolve maps printed team names to current franchise identities for the
// stagger stage.
type Pipeline struct {
	Dir     string
	Resolve func(string) (string, bool)
}

// ParseStage validates a stage name.
func ParseStage(name string) (Stage, error) {
	for _, stage := range Stages {
		if string(stage) == name {
			return stage, nil
		}
	}
	return "", fmt.Errorf("unknown pipeline stage %q", name)
}

// RunStage executes one stage, reading and writing its stage files.
func (p *Pipeline) RunStage(stage Stage) error {
	in := filepath.Join(p.Dir, stageInput[stage])
	out := filepath.Join(p.Dir, stageOutput[stage])

	t, err := ReadFile(in)
	if err != nil {
		return fmt.Errorf("stage %s: %w", stage, err)
	}

	switch stage {
	case StageExpand:
		t, err = Expand(t)
	case StageSplit:
		t, err = Split(t)
	case StageStagger:
		t, err = Stagger(t, p.Resolve)
	case StagePreprocess:
		t, err = Preprocess(t)
	default:
		return fmt.Errorf("unknown pipeline stage %q", stage)
	}
	if err != nil {
		return fmt.Errorf("stage %s: %w", stage, err)
	}

	if err := t.WriteFile(out); err != nil {
		return fmt.Errorf("stage %s: %w", stage, err)
	}

	log.Printf("[features] ✓ Stage %s: %d rows -> %s", stage, len(t.Rows), stageOutput[stage])
	return nil
}

// RunAll executes every stage in order.
func (p *Pipeline) RunAll() error {
	for _, stage := range Stages {
		if err := p.RunStage(stage); err != nil {
			return err
		}
	}
	return nil
}
