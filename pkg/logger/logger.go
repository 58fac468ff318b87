package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Minimal leveled logger shared by the reservations service.
// - package-level Debug/Info/Warn/Error/Fatal variants and Init(level)
// - named component loggers (Named/New) for repositories and services

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	logger *log.Logger = log.New(os.Stdout, "", 0)
	level  Level       = LevelInfo
)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = parseLevel(l)
}

func parseLevel(l string) Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

func header(lvl, name string) string {
	h := fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(lvl))
	if name != "" {
		h += "[" + name + "] "
	}
	return h
}

func shouldLog(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func output() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Logger is a component logger. It shares the global level and, unless
// created with New, the global output.
type Logger struct {
	name string
	out  *log.Logger
}

// Named returns a Logger tagging every line with the component name.
func Named(name string) *Logger {
	return &Logger{name: name}
}

// New returns a Logger writing to w instead of the global output.
func New(w io.Writer, name string) *Logger {
	return &Logger{name: name, out: log.New(w, "", 0)}
}

// Name returns the component name.
func (l *Logger) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}

func (l *Logger) printf(lvl Level, tag, format string, v ...interface{}) {
	if !shouldLog(lvl) {
		return
	}
	out, name := output(), ""
	if l != nil {
		name = l.name
		if l.out != nil {
			out = l.out
		}
	}
	out.Printf(header(tag, name)+format, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) { l.printf(LevelDebug, "debug", format, v...) }
func (l *Logger) Infof(format string, v ...interface{})  { l.printf(LevelInfo, "info", format, v...) }
func (l *Logger) Warnf(format string, v ...interface{})  { l.printf(LevelWarn, "warn", format, v...) }
func (l *Logger) Errorf(format string, v ...interface{}) { l.printf(LevelError, "error", format, v...) }

var std *Logger

func Debugf(format string, v ...interface{}) { std.Debugf(format, v...) }
func Infof(format string, v ...interface{})  { std.Infof(format, v...) }
func Warnf(format string, v ...interface{})  { std.Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { std.Errorf(format, v...) }

func Fatalf(format string, v ...interface{}) {
	output().Printf(header("fatal", "")+format, v...)
	os.Exit(1)
}

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	if !shouldLog(LevelInfo) {
		return
	}
	output().Print(header("info", "") + fmt.Sprintln(v...))
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
