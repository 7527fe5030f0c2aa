package logging

import (
	"fmt"

	"talent-utils/internal/config"
)

var globalLogger *MultiLogger

// InitializeLogging initializes the global logging system from configuration
func InitializeLogging(cfg *config.Config) error {
	logger := NewMultiLogger()
	logger.SetLevel(ParseLogLevel(cfg.Logging.Level))

	if len(cfg.Logging.Adapters) == 0 {
		if err := logger.AddAdapter(NewStdoutAdapter("stdout", cfg.Logging.Format)); err != nil {
			return err
		}
		globalLogger = logger
		return nil
	}

	for _, spec := range cfg.Logging.Adapters {
		if !spec.Enabled {
			continue
		}

		var adapter LogAdapter
		var err error

		switch spec.Type {
		case "stdout":
			adapter = NewStdoutAdapter(spec.Name, getStringOption(spec.Options, "format", cfg.Logging.Format))
		case "file":
			adapter, err = NewFileAdapter(
				spec.Name,
				getStringOption(spec.Options, "format", cfg.Logging.Format),
				getStringOption(spec.Options, "file_path", ""),
			)
		default:
			return fmt.Errorf("unsupported adapter type: %s", spec.Type)
		}

		if err != nil {
			return fmt.Errorf("failed to create adapter %s: %w", spec.Name, err)
		}

		if err := logger.AddAdapter(adapter); err != nil {
			return fmt.Errorf("failed to add adapter %s: %w", spec.Name, err)
		}
	}

	globalLogger = logger
	return nil
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() Logger {
	if globalLogger == nil {
		// Fallback logger for code paths that run before initialization
		logger := NewMultiLogger()
		logger.AddAdapter(NewStdoutAdapter("fallback_stdout", "json"))
		globalLogger = logger
	}
	return globalLogger
}

// CloseLogging closes the global logging system
func CloseLogging() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

// LogWithRequestID creates a logger with request ID context
func LogWithRequestID(requestID string) Logger {
	return GetGlobalLogger().WithField("request_id", requestID)
}

func getStringOption(options map[string]interface{}, key, defaultValue string) string {
	if value, exists := options[key]; exists {
		if str, ok := value.(string); ok && str != "" {
			return str
		}
	}
	return defaultValue
}
