package analyze

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/docrank"
)

// Ensure Renderers implements docrank.Renderer at compile time.
var _ docrank.Renderer = (Renderers)(nil)

// Renderers dispatches rendering by lowercase file extension (".pdf").
type Renderers map[string]docrank.Renderer

// Render renders path with the renderer registered for its extension.
// Returns EINVALID for unsupported extensions.
func (r Renderers) Render(ctx context.Context, path string) ([]docrank.Page, error) {
	ext := strings.ToLower(filepath.Ext(path))
	renderer, ok := r[ext]
	if !ok {
		return nil, docrank.Errorf(docrank.EINVALID, "unsupported document type %q (supported: %s)", ext, strings.Join(r.Extensions(), ", "))
	}
	return renderer.Render(ctx, path)
}

// Extensions returns the registered extensions in sorted order.
func (r Renderers) Extensions() []string {
	exts := make([]string, 0, len(r))
	for ext := range r {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
