package modules

import (
	"github.com/pulseworks/worktrack/modules/directory"
	"github.com/pulseworks/worktrack/modules/projects"
	"github.com/pulseworks/worktrack/modules/worktracking"
	"github.com/pulseworks/worktrack/pkg/application"
)

// BuiltInModules lists every module in registration order. Order matters:
// worktracking resolves the directory visibility service at registration time.
var BuiltInModules = []application.Module{
	directory.NewModule(),
	worktracking.NewModule(),
	projects.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules, externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
