package projects

import (
	"embed"

	"github.com/pulseworks/worktrack/modules/projects/infrastructure/persistence"
	"github.com/pulseworks/worktrack/modules/projects/presentation/controllers"
	"github.com/pulseworks/worktrack/modules/projects/services"
	"github.com/pulseworks/worktrack/pkg/application"
)

//go:embed infrastructure/persistence/schema/projects-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)

	app.RegisterServices(
		services.NewProjectService(
			persistence.NewProjectRepository(),
			persistence.NewChangeLogRepository(),
			app.EventPublisher(),
		),
	)
	app.RegisterControllers(
		controllers.NewProjectAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "projects"
}
