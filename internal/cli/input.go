package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/timecard/internal/service"
)

var errNoInput = errors.New("no input: pass transcript, image or CSV files, or pipe a transcript on stdin")

// collectSources loads the named files, or stdin when none are given.
// Unreadable files become sources that report a warning; unsupported
// extensions are an error.
func (app *App) collectSources(args []string) ([]service.Source, error) {
	if len(args) == 0 {
		if app.Stdin == nil || (app.StdinIsTerminal != nil && app.StdinIsTerminal()) {
			return nil, errNoInput
		}
		src, err := service.ReadSource("stdin", app.Stdin)
		if err != nil {
			return nil, err
		}
		return []service.Source{src}, nil
	}

	sources := make([]service.Source, 0, len(args))
	for _, path := range args {
		src, err := service.LoadSource(path)
		if errors.Is(err, service.ErrUnsupportedSource) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err != nil {
			src.Err = err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
