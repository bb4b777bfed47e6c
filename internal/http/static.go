package http

import (
	"bytes"
	"embed"
	"io/fs"
	stdhttp "net/http"
	"time"

	"github.com/rotisserie/eris"
)

//go:embed static/*
var staticFiles embed.FS

var (
	favicon       []byte
	fallbackImage []byte
)

func init() {
	if data, err := staticFiles.ReadFile("static/favicon.ico"); err == nil {
		favicon = data
	}
	if data, err := staticFiles.ReadFile("static/fallback.jpg"); err == nil {
		fallbackImage = data
	}
}

func faviconHandler(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	serveStaticBytes(w, r, "favicon.ico", "image/x-icon", favicon)
}

// fallbackImageHandler serves the placeholder shown when a document carries no
// image reference.
func fallbackImageHandler(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	serveStaticBytes(w, r, "fallback.jpg", "image/jpeg", fallbackImage)
}

func serveStaticBytes(w stdhttp.ResponseWriter, r *stdhttp.Request, name, contentType string, data []byte) {
	if len(data) == 0 {
		w.WriteHeader(stdhttp.StatusNotFound)
		return
	}

	reader := bytes.NewReader(data)
	w.Header().Set("Content-Type", contentType)
	stdhttp.ServeContent(w, r, name, time.Time{}, reader)
}

func newStaticAssetHandler() (stdhttp.Handler, error) {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, eris.Wrap(err, "preparing static assets filesystem")
	}

	return stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.FS(assets))), nil
}

func (s *Server) registerStaticRoute() {
	handler, err := newStaticAssetHandler()
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Error("registering static assets handler failed")
		}
		return
	}

	s.mux.Handle("GET /static/", handler)
	s.mux.Handle("HEAD /static/", handler)
}
