package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timecard/internal/report"
	"github.com/fsnotify/fsnotify"
)

type watchService struct {
	reports  ReportService
	debounce time.Duration
	observer UseCaseObserver
}

// NewWatchService rebuilds reports through reports. A non-positive debounce
// uses DefaultDebounce.
func NewWatchService(reports ReportService, debounce time.Duration, observers ...UseCaseObserver) WatchService {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &watchService{
		reports:  reports,
		debounce: debounce,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *watchService) Watch(ctx context.Context, dir string, onReport func(*report.Report)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	if err := s.rebuild(ctx, dir, onReport); err != nil {
		return err
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, supported := KindOf(event.Name); !supported {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.observer.ObserveUseCase(ctx, UseCaseEvent{
				Name:      "watch",
				StartedAt: time.Now().UTC(),
				Err:       werr,
				Fields:    map[string]any{"dir": dir},
			})

		case <-fire:
			fire = nil
			if err := s.rebuild(ctx, dir, onReport); err != nil {
				return err
			}
		}
	}
}

func (s *watchService) rebuild(ctx context.Context, dir string, onReport func(*report.Report)) error {
	sources, err := LoadDir(dir)
	if err != nil {
		return err
	}
	rep, err := s.reports.BuildReport(ctx, sources)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if onReport != nil {
		onReport(rep)
	}
	return nil
}
