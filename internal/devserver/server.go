package devserver

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/luckyframework/lucky-esbuild/internal/bridge"
)

// debounceInterval batches editor write bursts into one rebuild.
const debounceInterval = 100 * time.Millisecond

// reloadClient is served at /livereload.js; pages include it during
// development to pick up rebuild notifications.
const reloadClient = `(() => {
  const scheme = location.protocol === "https:" ? "wss" : "ws";
  const socket = new WebSocket(scheme + "://" + location.host + "/livereload");
  socket.onmessage = (event) => {
    const msg = JSON.parse(event.data);
    if (msg.type === "reload") location.reload();
    if (msg.type === "error") console.error("[lucky-esbuild] " + msg.text);
  };
})();
`

// Server watches the source root, rebuilds through the pipeline and serves
// the built output directory with live reload.
type Server struct {
	binding bridge.Binding
	root    string
	outDir  string
	rebuild func() error
	hub     *Hub
	log     zerolog.Logger

	// TLS material, required when the binding is secure.
	Cert string
	Key  string
}

func New(cfg *bridge.BuildConfig, rebuild func() error, log zerolog.Logger) *Server {
	return &Server{
		binding: cfg.Server,
		root:    cfg.Root,
		outDir:  cfg.OutDir,
		rebuild: rebuild,
		hub:     NewHub(log),
		log:     log,
	}
}

// Start watches and serves until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.hub.Start()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watchRecursive(watcher, s.root); err != nil {
		return err
	}

	go s.watchLoop(ctx, watcher)

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.outDir)))
	mux.HandleFunc("/livereload", s.hub.HandleWebSocket)
	mux.HandleFunc("/livereload.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		_, _ = w.Write([]byte(reloadClient))
	})

	srv := configureHTTPServer(s.binding.Addr(), mux)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("Failed to shut down dev server")
		}
	}()

	s.log.Info().
		Str("origin", s.binding.Origin).
		Str("addr", s.binding.Addr()).
		Str("root", s.root).
		Msg("Dev server listening")

	if s.binding.Secure {
		err = srv.ListenAndServeTLS(s.Cert, s.Key)
	} else {
		err = srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	debounce := time.NewTimer(debounceInterval)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				// New directories need their own watch.
				if err := watchRecursive(watcher, event.Name); err != nil {
					s.log.Debug().Err(err).Str("path", event.Name).Msg("watch add failed")
				}
			}
			if event.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				debounce.Reset(debounceInterval)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn().Err(err).Msg("Watcher error")

		case <-debounce.C:
			start := time.Now()
			if err := s.rebuild(); err != nil {
				s.log.Error().Err(err).Msg("Rebuild failed")
				s.hub.BroadcastError(err.Error())
				continue
			}
			s.log.Info().Dur("duration", time.Since(start)).Msg("Rebuilt assets")
			s.hub.BroadcastReload()
		}
	}
}

// watchRecursive adds path and every directory below it to the watcher.
// Non-directories and paths that vanished mid-walk are skipped.
func watchRecursive(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(p)
	})
}

func configureHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       5 * time.Minute,
		MaxHeaderBytes:    8 * 1024, // 8KiB
	}
}
