package server

import (
	"io/fs"
	"net/http"
	"strings"
)

// assetServer serves self-hosted page assets, such as local copies of the
// carousel and streaming scripts. Directories and missing files are 404s.
type assetServer struct {
	fileServer http.Handler
	fileSystem fs.FS
}

func newAssetServer(fsys fs.FS) *assetServer {
	return &assetServer{
		fileServer: http.FileServer(http.FS(fsys)),
		fileSystem: fsys,
	}
}

func (s *assetServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	info, err := fs.Stat(s.fileSystem, path)
	if path == "" || err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	s.fileServer.ServeHTTP(w, r)
}
