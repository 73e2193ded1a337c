package enginelog

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewAppliesRequestedLevel(t *testing.T) {
	log := New(logrus.WarnLevel)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
}

func TestDefaultIsInfoLevel(t *testing.T) {
	log := Default()
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
