package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Debug("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.Equal(t, logrus.DebugLevel, New(&buf, true).GetLevel())
}

func TestNew_NoTimestamp(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).WithField("path", "a.go").Debug("running line counter")
	assert.Equal(t, "level=debug msg=\"running line counter\" path=a.go\n", buf.String())
}
