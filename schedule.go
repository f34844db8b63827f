package simcore

import "fmt"

// Stage names one pass of a simulation step. Stages run in a fixed order;
// a module can splice in extra stages relative to an existing one.
type Stage struct {
	Name string
}

var (
	Prelude          = Stage{Name: "Prelude"}
	Chemistry        = Stage{Name: "Chemistry"}
	Reaction         = Stage{Name: "Reaction"}
	CellularAutomata = Stage{Name: "CellularAutomata"}
	Temperature      = Stage{Name: "Temperature"}
	Electrical       = Stage{Name: "Electrical"}
	Structural       = Stage{Name: "Structural"}
	FallingChunk     = Stage{Name: "FallingChunk"}
	Cleanup          = Stage{Name: "Cleanup"}
)

type systemFn func(cmd *Commands)

type systemScheduleBuilder struct {
	system  systemFn
	inStage Stage
}

// System wraps a plain function for scheduling. Defaults to Prelude; chain
// InStage to place it elsewhere.
func System(fn systemFn) systemScheduleBuilder {
	return systemScheduleBuilder{system: fn, inStage: Prelude}
}

func (b systemScheduleBuilder) InStage(s Stage) systemScheduleBuilder {
	b.inStage = s
	return b
}

type stagePosition int

const (
	stageBefore stagePosition = iota
	stageAfter
)

type stagePositionBuilder struct {
	position stagePosition
	target   Stage
}

func BeforeStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageBefore, target: s}
}

func AfterStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageAfter, target: s}
}

// UseStage splices a new stage into the schedule relative to an existing one.
func (app *App) UseStage(stage Stage, where stagePositionBuilder) *App {
	idx := -1
	for i, s := range app.stages {
		if s.Name == where.target.Name {
			idx = i
			break
		}
	}
	if idx == -1 {
		panic(fmt.Sprintf("stage %s not found", where.target.Name))
	}

	insertAt := idx
	if where.position == stageAfter {
		insertAt = idx + 1
	}

	app.stages = append(app.stages[:insertAt:insertAt], append([]Stage{stage}, app.stages[insertAt:]...)...)
	if _, ok := app.systemsByStage[stage.Name]; !ok {
		app.systemsByStage[stage.Name] = nil
	}
	return app
}

// UseSystem registers a system against the stage it was built with.
func (app *App) UseSystem(b systemScheduleBuilder) *App {
	if _, ok := app.systemsByStage[b.inStage.Name]; !ok {
		panic(fmt.Sprintf("stage %s doesn't exist", b.inStage.Name))
	}
	app.systemsByStage[b.inStage.Name] = append(app.systemsByStage[b.inStage.Name], b.system)
	return app
}
