//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	tf.StartSearchServer(WithHits(sampleHits()...))
	require.NoError(t, tf.StartApp(), "Failed to start app")

	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("desearch"), "Should show title")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	require.NoError(t, tf.Quit())

	select {
	case exitErr := <-done:
		require.NoError(t, exitErr, "q should exit cleanly")
	case <-time.After(2 * time.Second):
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		t.Fatal("app did not exit after q")
	}
}

func TestQuitKeyIsTextInQueryMode(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	tf.StartSearchServer(WithHits(sampleHits()...))
	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Press / to search"), "Should render before typing")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	require.NoError(t, tf.SendKeys(KeySearch))
	require.True(t, tf.SeePlain("Search:"), "prompt should render")
	require.NoError(t, tf.SendKeys("queue"))
	require.True(t, tf.SeePlain("queue"), "typed q should land in the input")

	select {
	case <-done:
		t.Fatal("typing q in query mode must not quit")
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, tf.SendCtrlC())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after ctrl+c")
	}
}
