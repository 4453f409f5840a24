package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/sdui/internal/adapters/cli"
	"github.com/3-lines-studio/sdui/internal/adapters/fs"
	"github.com/3-lines-studio/sdui/internal/usecase"
)

type renderFlags struct {
	input  string
	url    string
	format string
	out    string
	demo   bool
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a screen document to html, a virtual tree or a node tree",
		Example: `  sdui render --input home.json
  sdui render --url https://api.example.com/screens/home --format vdom --out home.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.input, "input", "i", "", "screen document file")
	cmd.Flags().StringVarP(&f.url, "url", "u", "", "screen document url")
	cmd.Flags().StringVarP(&f.format, "format", "f", string(usecase.FormatHTML), "output format (html, vhtml, vdom, tree)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&f.demo, "demo", false, "render the bundled demo document")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, f renderFlags) error {
	c := a.config()
	logger := a.logger(c)
	engine := a.engine(c, logger)
	output := cli.NewOutput()

	var files usecase.FileSystem = fs.NewOSFileSystem()
	if f.demo {
		files = fs.NewReadOnlyFileSystem(demoFS)
		f.input = demoPath
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), c.LoadTimeout)
	defer cancel()

	svc := usecase.NewRenderService(engine, files, output)
	result := svc.RenderScreen(ctx, usecase.RenderInput{
		Path:   f.input,
		URL:    f.url,
		Format: usecase.Format(f.format),
		Out:    f.out,
		Stdout: cmd.OutOrStdout(),
	})
	if result.Error != nil {
		return result.Error
	}

	if f.out != "" {
		output.PrintSuccess("rendered %d nodes (%d bytes)", result.Nodes, result.Bytes)
	}
	if n := len(result.Issues); n > 0 {
		output.PrintWarning("%d component(s) failed schema validation", n)
	}
	return nil
}
