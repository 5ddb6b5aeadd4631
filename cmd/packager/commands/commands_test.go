package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/packager/cmd/packager/commands"
	"go.trai.ch/packager/internal/app"
	"go.trai.ch/packager/internal/build"
)

type mockApp struct {
	buildFunc  func(ctx context.Context, opts app.RunOptions) error
	verifyFunc func(ctx context.Context, opts app.RunOptions) error
}

func (m *mockApp) Build(ctx context.Context, opts app.RunOptions) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Verify(ctx context.Context, opts app.RunOptions) error {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		called := false

		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.RunOptions) error {
				capturedOpts = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "--root", "/release", "-p", "--jobs", "4", "--log-json", "--config", "ci.yaml"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, app.RunOptions{
			Root:       "/release",
			ConfigPath: "ci.yaml",
			Partial:    true,
			Jobs:       4,
			LogJSON:    true,
		}, capturedOpts)
	})

	t.Run("defaults", func(t *testing.T) {
		var capturedOpts app.RunOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.RunOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.RunOptions{Root: "."}, capturedOpts)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects negative jobs", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "--jobs", "-1"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})

	t.Run("rejects arguments", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetArgs([]string{"build", "extra"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Verify(t *testing.T) {
	var capturedOpts app.RunOptions
	mock := &mockApp{
		verifyFunc: func(_ context.Context, opts app.RunOptions) error {
			capturedOpts = opts
			return nil
		},
		buildFunc: func(_ context.Context, _ app.RunOptions) error {
			panic("should not be called")
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"verify", "--partial-package-list"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, capturedOpts.Partial)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "packager version "+build.Version)
}
