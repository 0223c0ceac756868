// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/respond"
)

// indexFile is the single-page app entry served for unknown paths.
const indexFile = "index.html"

// regularFile resolves urlPath inside dir and reports whether it names a file.
func regularFile(dir, urlPath string) bool {
	name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+urlPath)))
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

func routeNotFound(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.NotFound("Route"))
}

// fileServer serves regular files from dir and answers 404 for anything else,
// so directories are never listed.
func fileServer(dir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	return func(writer http.ResponseWriter, request *http.Request) {
		if !regularFile(dir, request.URL.Path) {
			routeNotFound(writer, request)
			return
		}
		files.ServeHTTP(writer, request)
	}
}

// spaFallback serves files from the public directory and falls back to the
// app entry point so client-side routes survive a reload. Unknown API paths
// and non-GET methods get a JSON 404.
func spaFallback(publicDir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(publicDir))
	index := filepath.Join(publicDir, indexFile)

	return func(writer http.ResponseWriter, request *http.Request) {
		apiPath := request.URL.Path == "/api" || strings.HasPrefix(request.URL.Path, "/api/")
		readOnly := request.Method == http.MethodGet || request.Method == http.MethodHead
		if apiPath || !readOnly {
			routeNotFound(writer, request)
			return
		}

		if request.URL.Path != "/" && regularFile(publicDir, request.URL.Path) {
			files.ServeHTTP(writer, request)
			return
		}

		if _, err := os.Stat(index); err != nil {
			routeNotFound(writer, request)
			return
		}
		http.ServeFile(writer, request, index)
	}
}
