package main

import (
	"fmt"
	"log/slog"
	"strings"
)

var levelNames = map[string]slog.Level{
	"DEBUG": slog.LevelDebug,
	"INFO":  slog.LevelInfo,
	"WARN":  slog.LevelWarn,
	"ERROR": slog.LevelError,
}

// logLevelFlag is a flag.Value for slog levels
type logLevelFlag struct {
	value slog.Level
	set   bool
}

func (l logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	v, err := parseLevel(value)
	if err != nil {
		return err
	}
	l.value = v
	l.set = true
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	v, ok := levelNames[strings.ToUpper(s)]
	if !ok {
		return 0, fmt.Errorf("unknown log level: %q", s)
	}
	return v, nil
}
