// internal/app/features/workbooknew/handler.go
package workbooknew

import (
	"context"

	uierrors "github.com/dalemusser/workbookhub/internal/app/features/errors"
	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/staging"
	"go.uber.org/zap"
)

// DraftStore is the part of the draft store the create screen needs.
// *drafts.Store satisfies it.
type DraftStore interface {
	Create(ctx context.Context, userID string, d *staging.Draft) (string, error)
	Delete(ctx context.Context, id string) error
}

// Handler serves the workbook create screen.
type Handler struct {
	Drafts     DraftStore
	Ref        *refdata.Loader
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(drafts DraftStore, ref *refdata.Loader, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Drafts:     drafts,
		Ref:        ref,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}
