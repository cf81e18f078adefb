//go:build gui

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tsawler/textpick"
	"github.com/tsawler/textpick/status"
)

func main() {
	cfg, err := parseFlags("textpick-gui", os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if cfg.version {
		fmt.Printf("textpick %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	logOut, closeLog, err := openLog(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	template, err := newTemplate(cfg, newLogger(logOut, cfg.debug))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	session := textpick.NewSession(template)

	if cfg.file != "" {
		if err := runHeadless(context.Background(), cfg, session, os.Stdout, os.Stderr); err != nil {
			os.Exit(1)
		}
		return
	}

	a := app.New()
	w := a.NewWindow("textpick - Text Extractor")

	statusLabel := widget.NewLabel(status.Render(session.Reporter().State()))
	statusLabel.Wrapping = fyne.TextWrapWord

	bar := widget.NewProgressBar()
	bar.Hide()

	output := widget.NewMultiLineEntry()
	output.Wrapping = fyne.TextWrapWord
	output.SetPlaceHolder("Extracted text appears here.")
	output.Disable()

	render := func(st status.State) {
		statusLabel.SetText(status.Render(st))
		switch st.Phase {
		case status.Processing:
			bar.SetValue(float64(st.Percent) / 100)
			bar.Show()
		case status.Succeeded:
			bar.Hide()
			output.SetText(st.Text)
		case status.Failed:
			bar.Hide()
			output.SetText("")
		default:
			bar.Hide()
		}
	}

	go func() {
		for st := range session.Reporter().Changes() {
			fyne.Do(func() { render(st) })
		}
	}()

	var openButton *widget.Button
	openButton = widget.NewButton("Choose file...", func() {
		dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if rc == nil {
				return
			}
			path := rc.URI().Path()
			_ = rc.Close()

			// Input stays disabled until the extraction finishes.
			openButton.Disable()
			go func() {
				_, _ = session.ExtractPath(context.Background(), path)
				fyne.Do(openButton.Enable)
			}()
		}, w)
	})

	content := container.NewBorder(
		container.NewVBox(openButton, statusLabel, bar),
		nil, nil, nil,
		output,
	)

	w.SetContent(content)
	w.Resize(fyne.NewSize(700, 500))
	w.ShowAndRun()
}
