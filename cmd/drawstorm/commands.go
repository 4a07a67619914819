package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/dshills/drawstorm/internal/app"
	sysclip "github.com/dshills/drawstorm/internal/clipboard"
	"github.com/dshills/drawstorm/internal/config"
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/scene"
)

type globalOptions struct {
	configPath string
	scenePath  string
}

func (o *globalOptions) load() (*config.Config, *scene.Document, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.scenePath == "" {
		return cfg, nil, nil
	}
	doc, err := scene.Load(o.scenePath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, doc, nil
}

func saveScene(path string, doc *scene.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	if err := doc.Encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("save scene: %w", err)
	}
	return f.Close()
}

// headlessCanvas stands in for a render surface when no terminal is open.
type headlessCanvas struct{ width, height int }

func (c headlessCanvas) Size() (int, int) { return c.width, c.height }

func buildRunCmd(opts *globalOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the scene in the terminal",
		Long: `Open the scene in an interactive terminal view.

Shortcuts dispatch through the action manager exactly as configured.
Ctrl+P opens the action search and Ctrl+Q quits. Esc dismisses messages.
With --config the file is watched and device and host settings reload
live.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, doc, err := opts.load()
			if err != nil {
				return err
			}
			application, err := app.New(app.Options{Config: cfg, Document: doc})
			if err != nil {
				return err
			}
			defer application.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if opts.configPath != "" {
				w, err := config.NewWatcher(opts.configPath, func(cfg *config.Config, err error) {
					if err != nil {
						application.Logger().Warn("config reload failed", "err", err)
						return
					}
					application.ApplyConfig(cfg)
					application.Logger().Info("config reloaded", "path", opts.configPath)
				})
				if err != nil {
					return err
				}
				defer w.Close()
				go func() { _ = w.Run(ctx) }()
			}

			terminal, err := app.NewTerminal(application, nil)
			if err != nil {
				return err
			}
			if err := terminal.Run(ctx); err != nil && err != context.Canceled {
				return err
			}

			application.Wait()
			if save && opts.scenePath != "" {
				return saveScene(opts.scenePath, application.Document())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the scene back to --scene on exit")
	return cmd
}

func buildActionsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List registered actions and their state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, doc, err := opts.load()
			if err != nil {
				return err
			}
			application, err := app.New(app.Options{
				Config:    cfg,
				Document:  doc,
				Clipboard: sysclip.NewMemory(),
				Canvas:    headlessCanvas{1024, 768},
			})
			if err != nil {
				return err
			}
			defer application.Close()

			return writeActions(cmd.OutOrStdout(), application)
		},
	}
}

func writeActions(w io.Writer, application *app.Application) error {
	state := application.State()
	m := application.Manager()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tENABLED\tSHORTCUT\tVIEW MODE\tCHECKED\tLABEL")
	for _, a := range m.Actions() {
		checked := "-"
		if a.Checked != nil {
			checked = yesNo(a.Checked(state))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Name, yesNo(m.IsActionEnabled(a)), yesNo(a.HasShortcut()),
			yesNo(a.ViewMode), checked, a.ContextItemLabel)
	}
	return tw.Flush()
}

func buildExecCmd(opts *globalOptions) *cobra.Command {
	var (
		out           string
		width, height int
		showClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "exec <action>",
		Short: "Run one action headlessly and print the resulting state",
		Long: `Run one action against the scene without a terminal.

The action runs as a programmatic invocation, so predicates and view
mode do not block it. The clipboard is in-memory; --clipboard prints
what the action copied. --out writes the resulting scene.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, doc, err := opts.load()
			if err != nil {
				return err
			}
			mem := sysclip.NewMemory()
			application, err := app.New(app.Options{
				Config:    cfg,
				Document:  doc,
				Clipboard: mem,
				Canvas:    headlessCanvas{width, height},
			})
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Execute(action.Name(args[0])); err != nil {
				return err
			}
			application.Wait()

			stdout := cmd.OutOrStdout()
			if err := writeJSON(stdout, application.State()); err != nil {
				return err
			}
			if showClipboard {
				writeClipboard(stdout, mem)
			}
			if out != "" {
				return saveScene(out, application.Document())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the resulting scene to this file")
	cmd.Flags().IntVar(&width, "width", 1024, "canvas width")
	cmd.Flags().IntVar(&height, "height", 768, "canvas height")
	cmd.Flags().BoolVar(&showClipboard, "clipboard", false, "print the clipboard contents after the action")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = pretty.Pretty(data)
	if isTerminal(w) {
		data = pretty.Color(data, nil)
	}
	_, err = w.Write(data)
	return err
}

func writeClipboard(w io.Writer, mem *sysclip.Memory) {
	if mime, blob := mem.Blob(); len(blob) > 0 {
		fmt.Fprintf(w, "clipboard: %s, %d bytes\n", mime, len(blob))
		return
	}
	text, err := mem.ReadText()
	if err != nil {
		fmt.Fprintln(w, "clipboard: empty")
		return
	}
	if sysclip.IsPayload(text) {
		_, _ = w.Write(pretty.Pretty([]byte(text)))
		return
	}
	fmt.Fprintln(w, text)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
