package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerStampsAppField(t *testing.T) {
	InitLogger("brd-admin-test")

	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	Logger.SetFormatter(&logrus.JSONFormatter{})

	Logger.Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "brd-admin-test", line["app"])
	assert.Equal(t, "hello", line["msg"])
}

func TestWithOpTagsEntries(t *testing.T) {
	entry := WithOp("submit")
	assert.Equal(t, "submit", entry.Data["op"])
}
