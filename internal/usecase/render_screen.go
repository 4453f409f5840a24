package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/3-lines-studio/sdui/internal/core"
	"github.com/3-lines-studio/sdui/internal/vdom"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatVDOM Format = "vdom"
	FormatTree Format = "tree"
	// FormatVirtualHTML serialises the virtual tree as markup.
	FormatVirtualHTML Format = "vhtml"
)

type RenderInput struct {
	// Exactly one of Path and URL is set.
	Path   string
	URL    string
	Format Format
	// Out is the destination file; empty writes to Stdout.
	Out    string
	Stdout io.Writer
}

type RenderOutput struct {
	Nodes  int
	Issues []error
	Bytes  int
	Error  error
}

type RenderService struct {
	engine ScreenEngine
	fs     FileSystem
	cli    CLIOutput
}

func NewRenderService(engine ScreenEngine, fs FileSystem, cli CLIOutput) *RenderService {
	return &RenderService{
		engine: engine,
		fs:     fs,
		cli:    cli,
	}
}

func (s *RenderService) RenderScreen(ctx context.Context, input RenderInput) RenderOutput {
	if (input.Path == "") == (input.URL == "") {
		return RenderOutput{Error: fmt.Errorf("exactly one of path or url is required")}
	}
	if input.Format == "" {
		input.Format = FormatHTML
	}

	if err := s.load(ctx, input); err != nil {
		return RenderOutput{Error: err}
	}

	tree := s.engine.Tree()
	issues := s.engine.Issues()
	for _, issue := range issues {
		s.cli.PrintWarning("%v", issue)
	}

	var buf bytes.Buffer
	if err := s.encode(&buf, input.Format, tree); err != nil {
		return RenderOutput{Nodes: tree.Len(), Issues: issues, Error: err}
	}

	if err := s.write(input, buf.Bytes()); err != nil {
		return RenderOutput{Nodes: tree.Len(), Issues: issues, Error: err}
	}

	return RenderOutput{
		Nodes:  tree.Len(),
		Issues: issues,
		Bytes:  buf.Len(),
	}
}

func (s *RenderService) load(ctx context.Context, input RenderInput) error {
	if input.URL != "" {
		if err := s.engine.LoadFromURL(ctx, input.URL); err != nil {
			return fmt.Errorf("failed to load %s: %w", input.URL, err)
		}
		return nil
	}

	if !s.fs.FileExists(input.Path) {
		return fmt.Errorf("document not found: %s", input.Path)
	}
	data, err := s.fs.ReadFile(input.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input.Path, err)
	}
	if err := s.engine.LoadJSON(data); err != nil {
		return fmt.Errorf("failed to parse %s: %w", input.Path, err)
	}
	return nil
}

func (s *RenderService) encode(w *bytes.Buffer, format Format, tree *core.Tree) error {
	switch format {
	case FormatHTML:
		return s.engine.RenderHTML(w)
	case FormatVDOM:
		if tree == nil {
			return core.ErrNoScreen
		}
		return writeJSON(w, s.engine.CreateVirtualDOM())
	case FormatVirtualHTML:
		if tree == nil {
			return core.ErrNoScreen
		}
		return vdom.Render(w, s.engine.CreateVirtualDOM())
	case FormatTree:
		if tree == nil {
			return core.ErrNoScreen
		}
		return writeJSON(w, tree)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (s *RenderService) write(input RenderInput, data []byte) error {
	if input.Out == "" {
		if input.Stdout == nil {
			return fmt.Errorf("no output destination")
		}
		_, err := input.Stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(input.Out); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := s.fs.WriteFile(input.Out, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", input.Out, err)
	}
	s.cli.PrintFile(input.Out)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
