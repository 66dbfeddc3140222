// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/workbookhub/internal/app/features/errors"
	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"github.com/dalemusser/workbookhub/internal/app/system/errmsg"
	"github.com/dalemusser/workbookhub/internal/app/system/inputval"
	"github.com/dalemusser/workbookhub/internal/app/system/normalize"
	"github.com/dalemusser/workbookhub/internal/app/system/ratelimit"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// UnknownUserMessage is shown when the backend rejects the username.
const UnknownUserMessage = "No user with that name exists."

type Handler struct {
	Backend    *backend.Client
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger

	// Limiter throttles sign-in attempts; nil disables throttling.
	Limiter *ratelimit.LoginLimiter
}

func NewHandler(client *backend.Client, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Backend:    client,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Username  string
	ReturnURL string
}

type loginInput struct {
	Username string `validate:"required,max=200" label:"Username"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/workbooks"), http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: ret,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	in := loginInput{Username: normalize.Username(r.FormValue("username"))}
	ret := r.FormValue("return")

	if res := inputval.Validate(in); res.HasErrors() {
		h.renderFormWithError(w, r, res.First(), in.Username, ret)
		return
	}

	if h.Limiter != nil {
		if ok, msg := h.Limiter.Check(r, in.Username); !ok {
			h.Log.Warn("login: throttled",
				zap.String("username", in.Username),
				zap.String("ip", ratelimit.ClientIP(r)))
			w.WriteHeader(http.StatusTooManyRequests)
			h.renderFormWithError(w, r, msg, in.Username, ret)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cookie, err := h.Backend.CreateSession(ctx, in.Username)
	if err != nil {
		if backend.StatusCode(err) == http.StatusUnprocessableEntity {
			h.Log.Info("login: unknown user", zap.String("username", in.Username))
			h.renderFormWithError(w, r, UnknownUserMessage, in.Username, ret)
			return
		}
		h.Log.Error("login: create backend session", zap.Error(err))
		h.renderFormWithError(w, r, errmsg.Message(err), in.Username, ret)
		return
	}

	ctx = backend.WithCredentials(ctx, cookie)
	info, err := h.Backend.GetSession(ctx)
	if err != nil {
		h.Log.Error("login: confirm backend session", zap.Error(err))
		h.renderFormWithError(w, r, errmsg.Message(err), in.Username, ret)
		return
	}

	user := auth.SessionUser{ID: info.UserID, Name: in.Username, BackendCookie: cookie}
	if name := h.lookupName(ctx, info.UserID); name != "" {
		user.Name = name
	}

	if err := h.SessionMgr.SignIn(w, r, user); err != nil {
		h.ErrLog.LogServerError(w, r, "login: save session", err, "Could not start your session.", "/login")
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetUser(in.Username)
	}
	h.Log.Info("user signed in", zap.String("user_id", user.ID))
	http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/workbooks"), http.StatusSeeOther)
}

// lookupName resolves the display name of userID. Failure is not fatal; the
// typed username is used instead.
func (h *Handler) lookupName(ctx context.Context, userID string) string {
	users, err := h.Backend.Users(ctx)
	if err != nil {
		h.Log.Warn("login: user list unavailable", zap.Error(err))
		return ""
	}
	for _, u := range users {
		if u.ID == userID {
			return u.Name
		}
	}
	return ""
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, username, ret string) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:     msg,
		Username:  username,
		ReturnURL: ret,
	})
}
