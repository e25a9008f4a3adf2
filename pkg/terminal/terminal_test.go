package terminal_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/locparse/pkg/logger"
	"github.com/dmitrymomot/locparse/pkg/terminal"
)

func TestBuffer(t *testing.T) {
	buf := terminal.NewBuffer()
	buf.WriteLine("info")
	buf.WriteVerboseLine("verbose")
	buf.WriteWarningLine("warn")
	buf.WriteErrorLine("err1")
	buf.WriteErrorLine("err2")

	assert.Len(t, buf.Lines(), 5)
	assert.Equal(t, []string{"err1", "err2"}, buf.Errors())
	assert.Equal(t, []string{"warn"}, buf.Warnings())
	assert.Equal(t, 2, buf.ErrorCount())
	assert.Equal(t, 1, buf.WarningCount())
	assert.Equal(t, terminal.SeverityVerbose, buf.Lines()[1].Severity)

	buf.Reset()
	assert.Empty(t, buf.Lines())
	assert.Zero(t, buf.ErrorCount())
}

func TestBuffer_Concurrent(t *testing.T) {
	buf := terminal.NewBuffer()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf.WriteErrorLine("x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, buf.ErrorCount())
}

func TestLogTerminal(t *testing.T) {
	out := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(out), logger.WithLevel(-4))
	term := terminal.NewLogTerminal(log).WithContext(context.Background())

	term.WriteVerboseLine("v")
	term.WriteLine("i")
	term.WriteWarningLine("w")
	term.WriteErrorLine("e")

	s := out.String()
	assert.Contains(t, s, "level=DEBUG msg=v")
	assert.Contains(t, s, "level=INFO msg=i")
	assert.Contains(t, s, "level=WARN msg=w")
	assert.Contains(t, s, "level=ERROR msg=e")
}

func TestTee(t *testing.T) {
	a, b := terminal.NewBuffer(), terminal.NewBuffer()
	term := terminal.Tee(a, nil, b, terminal.Nop())
	term.WriteErrorLine("boom")
	term.WriteWarningLine("careful")

	require.Equal(t, []string{"boom"}, a.Errors())
	require.Equal(t, []string{"boom"}, b.Errors())
	assert.Equal(t, []string{"careful"}, b.Warnings())
}
