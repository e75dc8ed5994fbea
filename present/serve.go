package present

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"folio/cms"
	"folio/common"
	"folio/modal"
	"folio/state"
)

const shutdownTimeout = 5 * time.Second

// Serve is "serve" command action: runs HTTP preview of writing modal until
// context is cancelled.
func Serve(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Logger("serve")

	addr := cmd.String("listen")
	if addr == "" {
		addr = env.Cfg.Server.Listen
	}

	client, err := cms.NewClient(&env.Cfg.Backend, env.Rpt, env.Logger(""))
	if err != nil {
		return fmt.Errorf("unable to prepare backend client: %w", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(env, client),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		errc <- srv.Shutdown(sctx)
	}()

	log.Info("Serving writing previews", zap.String("listen", addr), zap.String("backend", client.Endpoint()))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("unable to serve: %w", err)
	}
	if err := <-errc; err != nil {
		return fmt.Errorf("unable to shut down server: %w", err)
	}
	log.Info("Server stopped", zap.Duration("uptime", env.Uptime()))
	return nil
}

type handler struct {
	env    *state.LocalEnv
	client *cms.Client
	log    *zap.Logger
}

// NewHandler returns preview router. Every request gets its own modal
// session.
//
//	GET /healthz
//	GET /writings/{slug}[?term=<glossary slug>][&format=tree]
func NewHandler(env *state.LocalEnv, client *cms.Client) http.Handler {
	h := &handler{env: env, client: client, log: env.Logger("serve")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			h.log.Debug("Write error", zap.Error(err))
		}
	})
	r.Get("/writings/{slug}", h.writing)
	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			h.log.Info("Request",
				zap.String("id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)))
		}()
		next.ServeHTTP(ww, r)
	})
}

func (h *handler) writing(w http.ResponseWriter, r *http.Request) {
	format := common.OutputFmtHtml
	if f := r.URL.Query().Get("format"); f != "" {
		var err error
		if format, err = common.ParseOutputFmt(f); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	sess := NewSession(h.env, h.client)
	defer sess.Close()

	ctx := r.Context()
	if err := sess.Open(ctx, chi.URLParam(r, "slug")); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	var (
		ms     *modalSnapshot
		status = http.StatusOK
	)
	if err := sess.Do(ctx, func(sh *modal.Shell) {
		if term := r.URL.Query().Get("term"); term != "" && sh.Phase() == common.ModalPhaseSuccess {
			sh.Tooltip().Click(term)
		}
		ms = snapshot(sh, h.env)
		status = statusFor(sh.Err())
	}); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := ms.write(&buf, format); err != nil {
		h.log.Error("Unable to render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.log.Debug("Write error", zap.Error(err))
	}
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, cms.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, cms.ErrInvalidSlug):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func contentType(format common.OutputFmt) string {
	switch format {
	case common.OutputFmtXhtml:
		return "application/xhtml+xml; charset=utf-8"
	case common.OutputFmtTree:
		return "text/plain; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}
