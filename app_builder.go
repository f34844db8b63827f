package simcore

import "reflect"

// NewApp builds an App with the engine's fixed tick schedule already in
// place. Modules add systems into these stages (or splice new ones in with
// UseStage) rather than defining their own pass order.
func NewApp() *App {
	ecs := MakeEcs()
	app := &App{
		resources:      make(map[reflect.Type]any),
		ecs:            &ecs,
		systemsByStage: make(map[string][]systemFn),
		stages: []Stage{
			Prelude,
			Chemistry,
			Reaction,
			CellularAutomata,
			Temperature,
			Electrical,
			Structural,
			FallingChunk,
			Cleanup,
		},
	}
	for _, s := range app.stages {
		app.systemsByStage[s.Name] = nil
	}
	return app
}

// UseModules installs each module in order and flushes any entities/resources
// a module queued via Commands during Install.
func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		module.Install(app, cmd)
	}
	app.FlushCommands()
	return app
}
