package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/ui"
)

// Actions is the part of the dispatcher the CLI drives.
type Actions interface {
	Load(ctx context.Context) action.Result
	Dispatch(ctx context.Context, name string, fields action.Fields) action.Result
	Hello(ctx context.Context, fields action.Fields) action.Result
}

// Options tune output behavior from root flags.
type Options struct {
	Group   bool // list grouped by pending/done
	Actions Actions
	Stdout  io.Writer
	Stderr  io.Writer

	// Serve and Interactive back the long-running subcommands.
	Serve       func(ctx context.Context) error
	Interactive func(ctx context.Context) error
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage
// or rejected input).
func Run(ctx context.Context, args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Stderr)
		return 2
	}
	cmd, a := args[0], args[1:]
	r := runner{opt: opt}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ls":
		return r.list(ctx)

	case "add":
		return r.add(ctx, a)

	case "done":
		if len(a) != 1 {
			r.fail("usage: todo done <id>")
			return 2
		}
		return r.report(r.opt.Actions.Dispatch(ctx, action.ActionUpdateStatus, action.Fields{
			"id":     a[0],
			"status": model.StatusDone.String(),
		}), "marked done")

	case "status":
		if len(a) != 2 {
			r.fail("usage: todo status <id> <open|in_progress|done>")
			return 2
		}
		return r.report(r.opt.Actions.Dispatch(ctx, action.ActionUpdateStatus, action.Fields{
			"id":     a[0],
			"status": a[1],
		}), "status updated")

	case "rm":
		if len(a) != 1 {
			r.fail("usage: todo rm <id>")
			return 2
		}
		return r.report(r.opt.Actions.Dispatch(ctx, action.ActionDelete, action.Fields{"id": a[0]}), "removed")

	case "hello":
		res := r.opt.Actions.Hello(ctx, action.Fields{"name": strings.Join(a, " ")})
		if res.Failed() {
			return r.report(res, "")
		}
		fmt.Fprintln(r.opt.Stdout, res.Greeting)
		return 0

	case "tui":
		return r.run(ctx, "tui", opt.Interactive)

	case "serve":
		return r.run(ctx, "serve", opt.Serve)
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `todo - client for the remote todo service

Usage:
  todo [root flags] <subcommand> [args]

Subcommands:
  add [-d text] [-s status] <title...>   Create an item
  ls                                     List items
  done <id>                              Mark item done
  status <id> <status>                   Set status (open, in_progress, done)
  rm <id>                                Delete item
  hello [name]                           Call the greeter
  tui                                    Interactive list
  serve                                  HTTP action surface

Examples:
  todo add "Buy milk"
  todo add -s in_progress -d "2 litres" Buy milk
  todo ls
  todo done 2
  todo rm 3
`)
}

type runner struct {
	opt Options
}

func (r runner) fail(msg string) { ui.Fail(r.opt.Stderr, msg) }

// report prints a dispatcher result and maps it to an exit code.
func (r runner) report(res action.Result, okMsg string) int {
	if !res.Failed() {
		if okMsg != "" {
			ui.OK(r.opt.Stdout, okMsg)
		}
		return 0
	}
	msg := res.Message
	if res.Field != "" && !strings.HasPrefix(msg, res.Field) {
		msg = res.Field + ": " + msg
	}
	r.fail(msg)
	if res.Status >= http.StatusBadRequest && res.Status < http.StatusInternalServerError {
		return 2
	}
	return 1
}

func (r runner) run(ctx context.Context, name string, fn func(context.Context) error) int {
	if fn == nil {
		r.fail(name + ": not available")
		return 1
	}
	if err := fn(ctx); err != nil {
		r.fail(name + ": " + err.Error())
		return 1
	}
	return 0
}

func (r runner) add(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(r.opt.Stderr)
	desc := fs.String("d", "", "description")
	status := fs.String("s", "", "initial status")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		r.fail("usage: todo add [-d text] [-s status] <title...>")
		return 2
	}
	return r.report(r.opt.Actions.Dispatch(ctx, action.ActionCreate, action.Fields{
		"title":       strings.Join(fs.Args(), " "),
		"description": *desc,
		"status":      *status,
	}), "added")
}

func (r runner) list(ctx context.Context) int {
	res := r.opt.Actions.Load(ctx)
	if res.Failed() {
		return r.report(res, "")
	}
	items := res.Items
	t := ui.Current()

	d, p := stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymUnchecked), p,
		ui.C(t.Accent, "Total"), len(items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if r.opt.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(r.opt.Stdout, lines)
	return 0
}

// -------------- rendering helpers --------------

func stats(items []model.Item) (done, pending int) {
	for _, it := range items {
		if it.Done() {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(items []model.Item) []string {
	if len(items) == 0 {
		return []string{ui.C(ui.Current().Muted, "no items")}
	}
	width := 0
	for _, it := range items {
		if n := len(fmt.Sprint(it.ID)); n > width {
			width = n
		}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := fmt.Sprintf("%*d", width, it.ID)
		box, color := ui.StatusBox(it.Status)
		title := it.Title
		if r := []rune(title); len(r) > 80 {
			title = string(r[:77]) + "..."
		}
		line := fmt.Sprintf("%s %s %s", ui.Dim(idx), ui.C(color, box), title)
		if it.Status == model.StatusInProgress {
			line += " " + ui.C(ui.Current().Active, "("+it.Status.Label()+")")
		}
		if it.Description != "" {
			line += ui.C(ui.Current().Muted, " - "+it.Description)
		}
		out = append(out, line)
	}
	return out
}

func groupLines(items []model.Item) []string {
	var pend, done []model.Item
	for _, it := range items {
		if it.Done() {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
