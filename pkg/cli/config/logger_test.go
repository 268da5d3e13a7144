package config_test

import (
	"bytes"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
)

func TestLogger_Configure(t *testing.T) {
	prev := logging.Default()
	t.Cleanup(func() { logging.SetDefault(prev) })

	t.Run("json output redacts secrets", func(t *testing.T) {
		var buf bytes.Buffer
		closer, err := config.NewLoggerForTest("info", "json", &buf).Configure()
		gt.NoError(t, err).Required()
		defer closer()

		notify := config.NotifySection{SlackWebhookURL: "https://hooks.slack.com/s3cr3t", Level: "High"}
		logging.Default().Info("hello", "notify", notify, "risk_id", "abcd1234")

		gt.String(t, buf.String()).Contains(`"msg":"hello"`)
		gt.String(t, buf.String()).Contains("abcd1234")
		gt.Bool(t, bytes.Contains(buf.Bytes(), []byte("s3cr3t"))).False()
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		closer, err := config.NewLoggerForTest("warn", "json", &buf).Configure()
		gt.NoError(t, err).Required()
		defer closer()

		logging.Default().Info("quiet")
		gt.Number(t, buf.Len()).Equal(0)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("loud", "json", &bytes.Buffer{}).Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", &bytes.Buffer{}).Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogFormat)
	})
}
