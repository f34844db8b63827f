package simcore

import (
	"fmt"
	"reflect"
)

// Module installs systems and resources into an App. Modules are composed
// at startup in App.UseModules; installation order determines which
// resources are available to later modules.
type Module interface {
	Install(app *App, cmd *Commands)
}

type pendingAdd struct {
	eid        EntityId
	components []any
}

type pendingCompAdd struct {
	eid        EntityId
	components []any
}

type pendingCompRemoval struct {
	eid        EntityId
	components []any
}

// App owns the ECS, resources, and the stage schedule. Unlike a render-loop
// engine, App never runs its own loop: the host calls StepOnce once per
// simulation tick.
type App struct {
	resources      map[reflect.Type]any
	ecs            *Ecs
	stages         []Stage
	systemsByStage map[string][]systemFn

	pendingAdditions    []pendingAdd
	pendingRemovals     []EntityId
	pendingCompAdds     []pendingCompAdd
	pendingCompRemovals []pendingCompRemoval
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

func (app *App) addResources(resources ...any) {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() == reflect.Pointer {
			resourceType = resourceType.Elem()
		}
		if _, ok := app.resources[resourceType]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType] = resource
	}
}

// Resource fetches a previously-registered resource by type. Panics if the
// type was never added via AddResources, mirroring the engine's "no silent
// nil resources" rule.
func Resource[T any](app *App) *T {
	t := reflect.TypeFor[T]()
	r, ok := app.resources[t]
	if !ok {
		panic(fmt.Sprintf("resource %s not registered", t))
	}
	return r.(*T)
}

// StepOnce runs every stage, in schedule order, once. Buffered entity/component
// mutations from Commands are flushed after each stage, so a later stage in
// the same step always sees the prior stage's structural changes.
func (app *App) StepOnce() {
	cmd := app.Commands()
	for _, stage := range app.stages {
		for _, sys := range app.systemsByStage[stage.Name] {
			sys(cmd)
		}
		app.FlushCommands()
	}
}

// FlushCommands applies every buffered Commands mutation to the ECS. Called
// automatically between stages by StepOnce; exposed so tests and callers
// driving a single stage directly can flush without a full step.
func (app *App) FlushCommands() {
	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	for _, add := range app.pendingCompAdds {
		app.ecs.addComponents(add.eid, add.components...)
	}
	app.pendingCompAdds = app.pendingCompAdds[:0]

	for _, rem := range app.pendingCompRemovals {
		app.ecs.removeComponents(rem.eid, rem.components...)
	}
	app.pendingCompRemovals = app.pendingCompRemovals[:0]

	for _, eid := range app.pendingRemovals {
		app.ecs.removeEntity(eid)
	}
	app.pendingRemovals = app.pendingRemovals[:0]
}
