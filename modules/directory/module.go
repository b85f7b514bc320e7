package directory

import (
	"embed"

	"github.com/pulseworks/worktrack/modules/directory/infrastructure/persistence"
	"github.com/pulseworks/worktrack/modules/directory/presentation/controllers"
	"github.com/pulseworks/worktrack/modules/directory/services"
	"github.com/pulseworks/worktrack/pkg/application"
)

//go:embed infrastructure/persistence/schema/directory-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)
	repo := persistence.NewEmployeeRepository()
	app.RegisterServices(
		services.NewEmployeeService(repo, app.EventPublisher()),
		services.NewVisibilityService(repo),
	)
	app.RegisterControllers(
		controllers.NewEmployeeAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "directory"
}
