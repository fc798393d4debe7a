package utils

import (
	"strings"

	"github.com/sirupsen/logrus"

	intconfig "logisticshub/internal/config"
)

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	intconfig.GetLogger().WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}

// LogWarn is LogEvent at warning level, used for data the operator has to fix.
func LogWarn(requestID, module, action, message string) {
	intconfig.GetLogger().WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Warn(message)
}
