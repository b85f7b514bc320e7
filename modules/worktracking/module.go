package worktracking

import (
	"embed"

	directoryservices "github.com/pulseworks/worktrack/modules/directory/services"
	"github.com/pulseworks/worktrack/modules/worktracking/infrastructure/persistence"
	"github.com/pulseworks/worktrack/modules/worktracking/presentation/controllers"
	"github.com/pulseworks/worktrack/modules/worktracking/services"
	"github.com/pulseworks/worktrack/pkg/application"
)

//go:embed infrastructure/persistence/schema/worktracking-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

// Register wires the work tracking services. The directory module must be
// registered first; visibility checks resolve against its service.
func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)

	visibility := app.Service(directoryservices.VisibilityService{}).(*directoryservices.VisibilityService)
	employees := app.Service(directoryservices.EmployeeService{}).(*directoryservices.EmployeeService)
	itemRepo := persistence.NewWorkItemRepository()
	logRepo := persistence.NewWorkLogRepository()
	noteRepo := persistence.NewNoteRepository()

	effortService := services.NewEffortTableService(persistence.NewEffortRepository())
	itemService := services.NewWorkItemService(itemRepo, logRepo, noteRepo, effortService, visibility, employees, app.EventPublisher())
	app.RegisterServices(
		effortService,
		itemService,
		services.NewWorklogService(itemRepo, logRepo, itemService, visibility, app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewWorkItemAPIController(app),
		controllers.NewEffortAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "worktracking"
}
