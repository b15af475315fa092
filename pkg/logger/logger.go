package logger

import (
	"fmt"
	"path"
	"runtime"

	"github.com/seimple/seimple/internal/domain"
	log "github.com/sirupsen/logrus"
)

func SetupLogger(level string) {
	loggerLevel, err := log.ParseLevel(level)
	log.SetReportCaller(true)

	log.SetFormatter(&log.JSONFormatter{
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
		},
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err != nil {
		log.Infof("Level setup default INFO, err: %v", err)
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(loggerLevel)
	}
}

const previewLimit = 200

// LogStored emits the per-datagram trace line: effective timestamp,
// origin, and a truncated message preview.
func LogStored(rec *domain.LogRecord, srcPort int) {
	log.WithFields(log.Fields{
		"ts":   rec.EffectiveTime().Format(domain.TimeLayout),
		"host": rec.Host,
		"port": srcPort,
		"id":   rec.ID,
		"msg":  preview(rec.Message),
	}).Info("Datagram stored")
}

func LogIngestError(origin string, err error) {
	log.WithFields(log.Fields{
		"origin": origin,
		"error":  err,
	}).Error("Failed to ingest datagram")
}

func preview(msg string) string {
	if len(msg) > previewLimit {
		return msg[:previewLimit]
	}
	return msg
}
