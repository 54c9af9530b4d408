package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/dto"
)

// errPanic is what clients see for a recovered panic. The panic value and
// stack stay in the logs.
var errPanic = errors.New("internal server error")

// Recovery turns a handler panic into a problem+json 500 and an ERROR log
// with the stack. If the response has already started only the log is
// written. http.ErrAbortHandler is re-raised so net/http can abort the
// connection as it intends.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rr := newResponseRecorder(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", r.Header.Get(HeaderRequestID)),
					slog.Bool("response_started", rr.wroteHeader),
				)
				if !rr.wroteHeader {
					dto.WriteErrorResponse(rr, r, errPanic)
				}
			}()

			next.ServeHTTP(rr, r)
		})
	}
}
