package httpx

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/quick-forms/log"
)

// Error sends the uniform `{errorMessage}` JSON body with the given status.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]any{"errorMessage": msg})
}

// Will log an error, and send a JSON error response with status 500 and a
// generic message, leaking no internal detail
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %s", code, err)
	Error(w, r, http.StatusInternalServerError, "Internal server error")
}

// Will log a debug message, and send a JSON error response with status 404
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, id any, msg string) {
	log.Debugf("%s: not found (%v)", code, id)
	Error(w, r, http.StatusNotFound, msg)
}

// Will log an error code at the given level, and send a JSON error response
// with the given status and message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string) {
	log.Log(level, code+":", msg)
	Error(w, r, status, msg)
}

// Will log an error code at the given level, and send an HTTP response with
// status and default text
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}
