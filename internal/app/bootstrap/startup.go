// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/workbookhub/internal/app/resources"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// draftCleanup is started in Startup and stopped in Shutdown.
var draftCleanup *workers.DraftCleanup

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It applies
// the configured request budgets, registers shared templates, and starts the
// background worker that purges expired drafts.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:    timeouts.DefaultPing,
		Short:   appCfg.TimeoutShort,
		Medium:  appCfg.TimeoutMedium,
		Publish: appCfg.TimeoutPublish,
		Export:  appCfg.TimeoutExport,
	})

	resources.LoadSharedTemplates()

	if deps.Drafts != nil && appCfg.DraftCleanupInterval > 0 {
		draftCleanup = workers.NewDraftCleanup(deps.Drafts, logger, appCfg.DraftCleanupInterval)
		draftCleanup.Start()
	}
	return nil
}
