package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter("report-test", "warning", &buf)

	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)
	l.Errorf("also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "[WARN] report-test:")
	assert.Contains(t, out, "[ERRO] report-test: also shown")
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter("report-default", "loud", &buf)

	l.Debugf("debug line")
	l.Infof("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Errorf("nothing %s", "here") })
}
