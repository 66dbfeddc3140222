// internal/app/features/workbooks/handler.go
package workbooks

import (
	uierrors "github.com/dalemusser/workbookhub/internal/app/features/errors"
	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"go.uber.org/zap"
)

// Handler serves the workbook list and the workbook search.
type Handler struct {
	Backend *backend.Client
	Ref     *refdata.Loader
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(client *backend.Client, ref *refdata.Loader, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Backend: client,
		Ref:     ref,
		ErrLog:  errLog,
		Log:     logger,
	}
}
