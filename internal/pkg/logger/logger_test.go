package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_ProductionUsesJSON(t *testing.T) {
	Init(Options{Level: "debug", Production: true})

	var buf bytes.Buffer
	Get().SetOutput(&buf)

	WithComponent("push").WithField("topic", "rol_admin").Info("sent")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "push", entry["component"])
	assert.Equal(t, "rol_admin", entry["topic"])
	assert.Equal(t, logrus.DebugLevel, Get().GetLevel())
}

func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	Init(Options{Level: "loud"})
	assert.Equal(t, logrus.InfoLevel, Get().GetLevel())
}
