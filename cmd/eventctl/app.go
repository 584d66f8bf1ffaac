package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/pflag"

	"github.com/prohmpiriya/event-management/internal/di"
	"github.com/prohmpiriya/event-management/internal/viewmodel"
	"github.com/prohmpiriya/event-management/pkg/config"
)

// app is the per-invocation wiring shared by every command
type app struct {
	container *di.Container
	vm        *viewmodel.EventViewModel
	out       *printer
	stderr    io.Writer
	pageSize  int
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("base-url", config.DefaultBaseURL, "API base URL")
	fs.Duration("timeout", 30*time.Second, "timeout for connect, write and read")
	fs.String("locale", "id", "message language (id, en)")
	fs.Int("page-size", 5, "events per page")
	fs.String("log-level", "error", "log level (debug, info, warn, error)")
	fs.String("output", formatTable, "output format (table, json)")
	return fs
}

// setup parses args, loads configuration and builds the container
func setup(ctx context.Context, fs *pflag.FlagSet, args []string, stdout, stderr io.Writer) (*app, error) {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithFlags(fs)
	if err != nil {
		return nil, err
	}
	// logs stay quiet unless asked for
	if !fs.Changed("log-level") && os.Getenv("LOG_LEVEL") == "" {
		cfg.Log.Level = "error"
	}

	format, _ := fs.GetString("output")
	p, err := newPrinter(stdout, format, cfg.App.Locale)
	if err != nil {
		return nil, err
	}

	container, err := di.NewContainer(ctx, &di.ContainerConfig{Config: cfg})
	if err != nil {
		return nil, err
	}

	return &app{
		container: container,
		vm:        container.EventViewModel,
		out:       p,
		stderr:    stderr,
		pageSize:  cfg.App.PageSize,
	}, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.container.Close(ctx); err != nil {
		fmt.Fprintf(a.stderr, "Warning: %v\n", err)
	}
}

// outcome is the last error and success message observed during an action
type outcome struct {
	err     string
	success string
}

// perform runs action while watching the error and success messages. It
// prints the success banner and turns an error message into an error.
func (a *app) perform(ctx context.Context, action func(context.Context)) error {
	watchCtx, stop := context.WithCancel(ctx)
	errCh := a.vm.ErrorMessage().Subscribe(watchCtx)
	okCh := a.vm.SuccessMessage().Subscribe(watchCtx)

	var (
		wg  sync.WaitGroup
		res outcome
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		for msg := range errCh {
			if msg != nil {
				res.err = *msg
			} else {
				res.err = ""
			}
		}
	}()
	go func() {
		defer wg.Done()
		for msg := range okCh {
			if msg != nil {
				res.success = *msg
			}
		}
	}()

	action(ctx)
	stop()
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if res.err != "" {
		return errors.New(res.err)
	}
	if res.success != "" {
		a.out.banner(res.success)
	}
	return nil
}

// positional checks the number of positional arguments
func positional(fs *pflag.FlagSet, n int, usage string) ([]string, error) {
	if fs.NArg() != n {
		return nil, fmt.Errorf("usage: eventctl %s", usage)
	}
	return fs.Args(), nil
}
