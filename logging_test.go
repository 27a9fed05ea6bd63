package gizmo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLogger("gizmosnap", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, out.String())

	l.Infof("size %dx%d", 800, 600)
	assert.Contains(t, out.String(), "[gizmosnap] INFO: size 800x600")

	l.Warnf("careful")
	l.Errorf("broken: %v", "disk")
	assert.Contains(t, errOut.String(), "[gizmosnap] WARN: careful")
	assert.Contains(t, errOut.String(), "[gizmosnap] ERROR: broken: disk")
	assert.NotContains(t, out.String(), "careful")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	assert.Contains(t, out.String(), "[gizmosnap] DEBUG: shown 2")
	assert.Equal(t, 2, strings.Count(out.String(), "\n"))
}

func TestDefaultLogger_NoPrefix(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger("", true, &out, &out)
	l.Infof("plain")
	assert.Contains(t, out.String(), " INFO: plain")
	assert.NotContains(t, out.String(), "[")
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	assert.NotPanics(t, func() {
		l.Debugf("x")
		l.Errorf("y")
	})
}
