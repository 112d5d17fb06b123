package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvDefaults(t *testing.T) {
	assert.Equal(t, "fallback", getEnv("CV_PIPELINE_UNSET_KEY", "fallback"))

	t.Setenv("CV_PIPELINE_SET_KEY", "value")
	assert.Equal(t, "value", getEnv("CV_PIPELINE_SET_KEY", "fallback"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("CV_PIPELINE_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("CV_PIPELINE_INT", 7))

	t.Setenv("CV_PIPELINE_INT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("CV_PIPELINE_INT", 7))
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("CV_PIPELINE_DUR", "90s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("CV_PIPELINE_DUR", "5s"))

	t.Setenv("CV_PIPELINE_DUR", "bogus")
	assert.Equal(t, 5*time.Second, getEnvAsDuration("CV_PIPELINE_DUR", "5s"))
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("CV_PIPELINE_LANGS", "eng, deu ,fra")
	assert.Equal(t, []string{"eng", "deu", "fra"}, getEnvAsSlice("CV_PIPELINE_LANGS", "eng"))

	assert.Equal(t, []string{"eng"}, getEnvAsSlice("CV_PIPELINE_LANGS_UNSET", "eng"))
}
