package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/snapp-dev/snapp/internal/config"
	"github.com/snapp-dev/snapp/internal/demo"
	"github.com/snapp-dev/snapp/internal/errors"
	"github.com/snapp-dev/snapp/pkg/dom"
	"github.com/snapp-dev/snapp/pkg/snapp"
)

type renderOptions struct {
	file   string
	target string
	mode   string
	output string
	clicks int
}

func renderCmd(verbose *bool) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the counter into an HTML document and print it",
		Long: `Render the counter application into an HTML document and print
the resulting markup.

The document is --file, else the document named in snapp.json if it
exists, else a built-in shell. --clicks dispatches that many click
events on the counter button before printing.

Examples:
  snapp render
  snapp render --file=page.html --target=main --mode=append
  snapp render --clicks=3 -o out.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, *verbose)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "HTML document to render into")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "Target selector (default from snapp.json)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "Insertion mode: replaceChildren, before, prepend, append, after, replace")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().IntVar(&opts.clicks, "clicks", 0, "Click events to dispatch before printing")

	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions, verbose bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	doc, rt, err := renderDocument(cmd, cfg, opts, verbose)
	if err != nil {
		return err
	}
	defer rt.Close()

	out := cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "cannot create %s", opts.output).Wrap(err)
		}
		defer f.Close()
		out = f
	}
	if _, err := doc.WriteTo(out); err != nil {
		return err
	}
	if opts.output == "" {
		_, err = out.Write([]byte("\n"))
	}
	return err
}

// renderDocument mounts the counter into the selected document and
// dispatches opts.clicks clicks. The caller closes the runtime.
func renderDocument(cmd *cobra.Command, cfg *config.Config, opts renderOptions, verbose bool) (*dom.Document, *snapp.Runtime, error) {
	if opts.target != "" {
		cfg.Target = opts.target
	}
	if opts.mode != "" {
		cfg.Mode = opts.mode
	}

	source, err := readDocument(cfg, opts.file)
	if err != nil {
		return nil, nil, err
	}
	doc, err := dom.ParseString(source)
	if err != nil {
		return nil, nil, errors.New("S140").WithDetail("cannot parse document").Wrap(err)
	}

	rt := snapp.New(doc, snapp.WithLogger(newLogger(cmd.ErrOrStderr(), cfg, verbose)))
	app, err := demo.Mount(rt, cfg.Target, snapp.ParseMode(cfg.Mode))
	if err != nil {
		rt.Close()
		return nil, nil, err
	}
	for i := 0; i < opts.clicks; i++ {
		rt.Dispatch(app.Button(), "click")
	}
	return doc, rt, nil
}

// readDocument returns the HTML to render into.
func readDocument(cfg *config.Config, file string) (string, error) {
	if file == "" {
		data, err := os.ReadFile(cfg.DocumentPath())
		if os.IsNotExist(err) {
			return demo.Shell, nil
		}
		if err != nil {
			return "", errors.New("S140").WithDetail("cannot read " + cfg.DocumentPath()).Wrap(err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", errors.New("S140").WithDetail("cannot read " + file).Wrap(err)
	}
	return string(data), nil
}
