package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/prohmpiriya/event-management/internal/domain"
	"github.com/prohmpiriya/event-management/internal/listing"
)

func listCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("list")
	search := fs.String("search", "", "keep events whose title contains this text")
	status := fs.String("status", listing.StatusAll, "status filter (all, upcoming, ongoing, completed, cancelled)")
	sortBy := fs.String("sort", "", "sort by time, location or title")
	page := fs.Int("page", 1, "page number, starting at 1")

	a, err := setup(ctx, fs, args, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := positional(fs, 0, "list [--search text] [--status s] [--sort key] [--page n]"); err != nil {
		return err
	}
	key, err := listing.ParseSortKey(*sortBy)
	if err != nil {
		return err
	}

	if err := a.perform(ctx, a.vm.LoadAllEvents); err != nil {
		return err
	}

	return a.out.page(listing.Apply(a.vm.Events().Get(), listing.Query{
		Search:   *search,
		Status:   *status,
		Sort:     key,
		Page:     *page,
		PageSize: a.pageSize,
	}))
}

func getCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("get")
	a, err := setup(ctx, fs, args, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	pos, err := positional(fs, 1, "get <id>")
	if err != nil {
		return err
	}

	if err := a.perform(ctx, func(ctx context.Context) { a.vm.LoadEventByID(ctx, pos[0]) }); err != nil {
		return err
	}
	return a.out.event(a.vm.SelectedEvent().Get())
}

func byDateCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("by-date")
	status := fs.String("status", listing.StatusAll, "status filter (all, upcoming, ongoing, completed, cancelled)")
	sortBy := fs.String("sort", string(listing.SortTime), "sort by time, location or title")

	a, err := setup(ctx, fs, args, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	pos, err := positional(fs, 1, "by-date <YYYY-MM-DD> [--status s] [--sort key]")
	if err != nil {
		return err
	}
	key, err := listing.ParseSortKey(*sortBy)
	if err != nil {
		return err
	}

	if err := a.perform(ctx, func(ctx context.Context) { a.vm.LoadEventsByDate(ctx, pos[0]) }); err != nil {
		return err
	}
	return a.out.events(listing.Sort(listing.Filter(a.vm.Events().Get(), "", *status), key))
}

func rangeCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("range")
	a, err := setup(ctx, fs, args, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	pos, err := positional(fs, 2, "range <from> <to>")
	if err != nil {
		return err
	}

	if err := a.perform(ctx, func(ctx context.Context) { a.vm.LoadEventsByDateRange(ctx, pos[0], pos[1]) }); err != nil {
		return err
	}
	return a.out.events(a.vm.Events().Get())
}

func byStatusCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("by-status")
	a, err := setup(ctx, fs, args, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	pos, err := positional(fs, 1, "by-status <upcoming|ongoing|completed|cancelled>")
	if err != nil {
		return err
	}

	if err := a.perform(ctx, func(ctx context.Context) { a.vm.LoadEventsByStatus(ctx, pos[0]) }); err != nil {
		return err
	}
	return a.out.events(a.vm.Events().Get())
}

func statsCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("stats")
	a, err := setup(ctx, fs, args, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := positional(fs, 0, "stats"); err != nil {
		return err
	}

	if err := a.perform(ctx, a.vm.LoadStatistics); err != nil {
		return err
	}
	stats := a.vm.Statistics().Get()
	if stats == nil {
		return errors.New("no statistics received")
	}
	return a.out.statistics(stats)
}

// eventFlags registers the form fields shared by create and update
func eventFlags(fs *pflag.FlagSet) {
	fs.String("title", "", "event title")
	fs.String("date", "", "date (YYYY-MM-DD)")
	fs.String("time", "", "time (HH:MM)")
	fs.String("location", "", "location")
	fs.String("description", "", "description")
	fs.String("capacity", "", "capacity, a positive number")
	fs.String("status", string(domain.StatusUpcoming), "upcoming, ongoing, completed or cancelled")
}

// applyFlags copies every explicitly set form flag onto form
func applyFlags(fs *pflag.FlagSet, form *domain.EventForm) {
	set := func(name string, dst *string) {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	set("title", &form.Title)
	set("date", &form.Date)
	set("time", &form.Time)
	set("location", &form.Location)
	set("description", &form.Description)
	set("capacity", &form.Capacity)
	if fs.Changed("status") {
		s, _ := fs.GetString("status")
		form.Status = domain.EventStatus(s)
	}
}

func createCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("create")
	eventFlags(fs)
	a, err := setup(ctx, fs, args, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := positional(fs, 0, "create --title t --date d --time t --location l [--description d --capacity n --status s]"); err != nil {
		return err
	}

	form := domain.FormFromEvent(nil)
	applyFlags(fs, &form)
	event := form.ToEvent(nil)
	if err := event.Validate(); err != nil {
		return err
	}

	return a.perform(ctx, func(ctx context.Context) { a.vm.CreateEvent(ctx, event, nil) })
}

func updateCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("update")
	eventFlags(fs)
	a, err := setup(ctx, fs, args, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	pos, err := positional(fs, 1, "update <id> [--title t --date d --time t --location l --description d --capacity n --status s]")
	if err != nil {
		return err
	}

	if err := a.perform(ctx, func(ctx context.Context) { a.vm.LoadEventByID(ctx, pos[0]) }); err != nil {
		return err
	}
	current := a.vm.SelectedEvent().Get()
	if current == nil {
		return fmt.Errorf("event %s not found", pos[0])
	}
	a.vm.SetEditEvent(*current)

	form := domain.FormFromEvent(current)
	applyFlags(fs, &form)
	event := form.ToEvent(a.vm.EditEvent().Get())
	if err := event.Validate(); err != nil {
		return err
	}

	if err := a.perform(ctx, func(ctx context.Context) { a.vm.UpdateEvent(ctx, event, nil) }); err != nil {
		return err
	}
	return a.out.event(a.vm.SelectedEvent().Get())
}

func deleteCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("delete")
	a, err := setup(ctx, fs, args, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	pos, err := positional(fs, 1, "delete <id>")
	if err != nil {
		return err
	}

	return a.perform(ctx, func(ctx context.Context) { a.vm.DeleteEvent(ctx, pos[0], nil) })
}
