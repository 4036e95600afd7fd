package quickserve

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// htmlContentType is served for files without an extension.
	htmlContentType = "text/html; charset=utf-8"

	// indexName is the page served for directory requests.
	indexName = "index"

	// maxBacklog bounds the requests queued behind the one being served.
	maxBacklog     = 64
	backlogTimeout = 30 * time.Second

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// NewHandler serves the files in dir one request at a time.
// Extension-less files are served as HTML and a directory containing an
// extension-less index file serves that file.
func NewHandler(dir string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = discardLogger()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(middleware.ThrottleBacklog(1, maxBacklog, backlogTimeout))

	root := http.Dir(dir)
	r.Handle("/*", &staticHandler{root: root, files: http.FileServer(root)})
	return r
}

// staticHandler serves regular files itself and leaves only directory
// listings to http.FileServer. FileServer redirects paths ending in
// "/index.html" and file paths with a trailing slash; here both are 404.
type staticHandler struct {
	root  http.FileSystem
	files http.Handler
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)

	info, err := h.stat(name)
	if err != nil {
		serveError(w, r, err)
		return
	}

	if info.IsDir() {
		index := path.Join(name, indexName)
		if fi, err := h.stat(index); err == nil && !fi.IsDir() {
			h.serveFile(w, r, index)
			return
		}
		h.files.ServeHTTP(w, r)
		return
	}

	if strings.HasSuffix(r.URL.Path, "/") {
		http.NotFound(w, r)
		return
	}
	h.serveFile(w, r, name)
}

func (h *staticHandler) stat(name string) (fs.FileInfo, error) {
	f, err := h.root.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return f.Stat()
}

// serveFile serves one regular file. Files without an extension are HTML;
// the rest get ServeContent's extension-based type.
func (h *staticHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	f, err := h.root.Open(name)
	if err != nil {
		serveError(w, r, err)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		serveError(w, r, err)
		return
	}
	if path.Ext(name) == "" {
		w.Header().Set("Content-Type", htmlContentType)
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// serveError maps a filesystem error to a plain-text status response.
func serveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		http.NotFound(w, r)
	case errors.Is(err, fs.ErrPermission):
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// requestLogger logs one line per request once the response is written.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

// Serve listens on addr and serves handler until ctx is done, then shuts
// down gracefully. A listen failure wraps ErrListen.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrListen, addr, err)
	}
	return serveListener(ctx, ln, handler, logger)
}

// serveListener serves on an open listener and closes it on return.
func serveListener(ctx context.Context, ln net.Listener, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = discardLogger()
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("serving", "url", "http://"+ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
