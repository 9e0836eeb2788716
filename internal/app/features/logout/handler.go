// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/flattrack/internal/app/system/auth"
	"github.com/dalemusser/flattrack/internal/app/system/httpjson"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// HandleLogout processes POST /api/logout and clears the session cookie.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Warn("logout: clear session", zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}
