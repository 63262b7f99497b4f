package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"depot3d/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	calls  []string
	fps    bool
	mem    bool
	status bool
	err    error
}

func (f *fakeTarget) ResetToOverview() { f.calls = append(f.calls, "overview") }
func (f *fakeTarget) Select(rack string, shelf int) error {
	f.calls = append(f.calls, rack+"/"+string(rune('0'+shelf)))
	return f.err
}
func (f *fakeTarget) Reload() error { f.calls = append(f.calls, "reload"); return f.err }
func (f *fakeTarget) SetShowFPS(on bool) { f.fps = on }
func (f *fakeTarget) SetShowMemAlloc(on bool) { f.mem = on }
func (f *fakeTarget) SetShowStatus(on bool) { f.status = on }

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		args []string
		ok   bool
	}{
		{"overview", []string{"overview"}, true},
		{"cmd select -rack R02", []string{"select", "-rack", "R02"}, true},
		{"  fps -on=false  ", []string{"fps", "-on=false"}, true},
		{"", nil, false},
		{"# comment", nil, false},
	}
	for _, tc := range cases {
		args, ok := Parse(tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		assert.Equal(t, tc.args, args, tc.line)
	}
}

func TestViewerCommands(t *testing.T) {
	reg := NewRegistry()
	ft := &fakeTarget{}
	RegisterViewer(reg, ft)
	assert.Equal(t, []string{"fps", "mem", "overview", "reload", "select", "status"}, reg.Names())
	assert.Len(t, reg.Help(), 6)

	require.NoError(t, reg.Execute([]string{"select", "-rack", "R02", "-shelf", "2"}))
	require.NoError(t, reg.Execute([]string{"select", "-rack", "R03"}))
	require.NoError(t, reg.Execute([]string{"overview"}))
	require.NoError(t, reg.Execute([]string{"reload"}))
	assert.Equal(t, []string{"R02/2", "R03/1", "overview", "reload"}, ft.calls)

	require.NoError(t, reg.Execute([]string{"fps"}))
	assert.True(t, ft.fps)
	require.NoError(t, reg.Execute([]string{"fps", "-on=false"}))
	assert.False(t, ft.fps)
	require.NoError(t, reg.Execute([]string{"status"}))
	assert.True(t, ft.status)
	require.NoError(t, reg.Execute([]string{"mem"}))
	assert.True(t, ft.mem)
}

func TestExecuteErrors(t *testing.T) {
	reg := NewRegistry()
	ft := &fakeTarget{}
	RegisterViewer(reg, ft)
	assert.Error(t, reg.Execute(nil))
	assert.ErrorContains(t, reg.Execute([]string{"nope"}), "unknown command")
	assert.ErrorContains(t, reg.Execute([]string{"select"}), "-rack is required")
	assert.Error(t, reg.Execute([]string{"select", "-shelf", "x"}))

	ft.err = errors.New("no such shelf")
	assert.ErrorIs(t, reg.Execute([]string{"select", "-rack", "R09"}), ft.err)
}

func TestReadLinesAndDrain(t *testing.T) {
	reg := NewRegistry()
	ft := &fakeTarget{}
	RegisterViewer(reg, ft)
	log := logger.Discard()

	ch := make(chan string, 8)
	err := ReadLines(context.Background(), strings.NewReader("overview\n\nbogus\nselect -rack R02 -shelf 3\n"), ch)
	require.NoError(t, err)

	assert.Equal(t, 3, reg.Drain(ch, log))
	assert.Equal(t, []string{"overview", "R02/3"}, ft.calls)
	assert.Equal(t, 1, log.Count("command failed"))
	assert.Zero(t, reg.Drain(ch, log), "closed channel")
}

func TestDrainDoesNotBlock(t *testing.T) {
	reg := NewRegistry()
	ch := make(chan string)
	assert.Zero(t, reg.Drain(ch, logger.Discard()))
}

func TestReadLinesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := make(chan string)
	err := ReadLines(ctx, strings.NewReader("overview\n"), ch)
	assert.ErrorIs(t, err, context.Canceled)
	_, open := <-ch
	assert.False(t, open)
}
