package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/testutil/todofake"
	"github.com/idilsaglam/todo/internal/todo"
	"github.com/idilsaglam/todo/internal/transport"
	"github.com/idilsaglam/todo/internal/ui"
	"github.com/idilsaglam/todo/internal/wire"
)

type harness struct {
	fake   *todofake.Service
	opt    Options
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, seed ...model.Item) *harness {
	t.Helper()
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })

	fake := todofake.New(seed...)
	h, err := transport.NewSelector().Bind(transport.Config{BaseAddress: todofake.Start(t, fake)}, transport.Browser)
	require.NoError(t, err)

	hs := &harness{fake: fake, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	hs.opt = Options{
		Actions: action.New(todo.FromHandle(h), nil),
		Stdout:  hs.stdout,
		Stderr:  hs.stderr,
	}
	return hs
}

func (h *harness) run(args ...string) int {
	return Run(context.Background(), args, h.opt)
}

func TestAdd(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("add", "-d", "2 litres", "-s", "in_progress", "Buy", "milk"))
	assert.Contains(t, h.stdout.String(), "added")

	items := h.fake.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Title)
	assert.Equal(t, "2 litres", items[0].Description)
	assert.Equal(t, model.StatusInProgress, items[0].Status)
}

func TestAddUsage(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 2, h.run("add"))
	assert.Equal(t, 2, h.run("add", "-s", "weird", "x"))
	assert.Contains(t, h.stderr.String(), "status must be a valid status")
	assert.Empty(t, h.fake.Calls())
}

func TestList(t *testing.T) {
	h := newHarness(t,
		model.Item{ID: 3, Title: "write tests", Status: model.StatusInProgress},
		model.Item{ID: 12, Title: "ship", Status: model.StatusDone},
	)
	require.Equal(t, 0, h.run("ls"))
	out := h.stdout.String()
	assert.Contains(t, out, " 3 [~] write tests (in_progress)")
	assert.Contains(t, out, "12 [x] ship")
	assert.Contains(t, out, "Total 2")
}

func TestListTruncatesLongTitlesByRune(t *testing.T) {
	title := strings.Repeat("é", 79) + "日本"
	h := newHarness(t, model.Item{ID: 1, Title: title, Status: model.StatusOpen})
	require.Equal(t, 0, h.run("ls"))
	out := h.stdout.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("é", 77)+"...")
	assert.NotContains(t, out, "日本")
}

func TestListGrouped(t *testing.T) {
	h := newHarness(t, model.Item{ID: 1, Title: "a", Status: model.StatusOpen})
	h.opt.Group = true
	require.Equal(t, 0, h.run("ls"))
	assert.Contains(t, h.stdout.String(), "Pending")
	assert.Contains(t, h.stdout.String(), "(none)")
}

func TestDoneAndStatus(t *testing.T) {
	h := newHarness(t, model.Item{ID: 42, Title: "x", Status: model.StatusOpen})

	require.Equal(t, 0, h.run("done", "42"))
	assert.Equal(t, model.StatusDone, h.fake.Items()[0].Status)

	require.Equal(t, 0, h.run("status", "42", "open"))
	assert.Equal(t, model.StatusOpen, h.fake.Items()[0].Status)

	assert.Equal(t, 2, h.run("status", "42"))
	assert.Equal(t, 2, h.run("done", "forty-two"))
	assert.Len(t, h.fake.Calls(), 2)
}

func TestRemove(t *testing.T) {
	h := newHarness(t, model.Item{ID: 5, Title: "x"})

	require.Equal(t, 0, h.run("rm", "5"))
	assert.Empty(t, h.fake.Items())

	assert.Equal(t, 1, h.run("rm", "5"))
	assert.Contains(t, h.stderr.String(), "failed to delete item")
	assert.NotContains(t, h.stderr.String(), "not found")
}

func TestRemoteFailureExitCode(t *testing.T) {
	h := newHarness(t)
	h.fake.FailWith(wire.ToDoServiceGetAllProcedure, connect.NewError(connect.CodeUnavailable, errors.New("down")))
	assert.Equal(t, 1, h.run("ls"))
	assert.Contains(t, h.stderr.String(), "failed to load items")
}

func TestHello(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("hello"))
	require.Equal(t, 0, h.run("hello", "big", "gopher"))
	assert.Equal(t, "Hello, world\nHello, big gopher\n", h.stdout.String())
}

func TestLongRunningHooks(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 1, h.run("serve"))

	called := false
	h.opt.Serve = func(context.Context) error { called = true; return nil }
	assert.Equal(t, 0, h.run("serve"))
	assert.True(t, called)

	h.opt.Interactive = func(context.Context) error { return errors.New("no tty") }
	assert.Equal(t, 1, h.run("tui"))
	assert.Contains(t, h.stderr.String(), "tui: no tty")
}

func TestUnknownAndHelp(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 2, h.run())
	assert.Equal(t, 2, h.run("archive"))
	assert.Contains(t, h.stderr.String(), "unknown subcommand: archive")
	assert.Equal(t, 0, h.run("help"))
	assert.Contains(t, h.stdout.String(), "Subcommands:")
}
