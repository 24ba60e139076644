package logger

import (
	"bytes"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logging.DEBUG, ParseLevel("debug"))
	assert.Equal(t, logging.WARNING, ParseLevel("warn"))
	assert.Equal(t, logging.ERROR, ParseLevel("error"))
	assert.Equal(t, logging.INFO, ParseLevel(""))
	assert.Equal(t, logging.INFO, ParseLevel("verbose"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(&buf, logging.WARNING)
	defer InitLoggerWithWriter(&bytes.Buffer{}, logging.INFO)

	Infof("hidden %d", 1)
	Warningf("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")
}
