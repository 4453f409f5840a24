package usecase

import (
	"context"
	"io"

	"github.com/3-lines-studio/sdui/internal/adapters/fs"
	"github.com/3-lines-studio/sdui/internal/core"
	"github.com/3-lines-studio/sdui/internal/vdom"
)

// ScreenEngine is the part of the engine the render use case drives.
type ScreenEngine interface {
	LoadJSON(data []byte) error
	LoadFromURL(ctx context.Context, url string) error
	Tree() *core.Tree
	Issues() []error
	RenderHTML(w io.Writer, from ...core.NodeID) error
	CreateVirtualDOM(from ...core.NodeID) *vdom.Element
}

type CLIOutput interface {
	PrintHeader(msg string)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
}

type FileSystem = fs.FileSystem
