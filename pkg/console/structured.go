package console

import (
	"io"
	"os"
	"strings"

	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/sirupsen/logrus"
)

// StructuredConsole implementa o ConsoleInterface emitindo logs estruturados,
// para execuções não interativas (Lambda, CI).
type StructuredConsole struct {
	logger *logrus.Logger
}

// NewStructuredConsole creates a console that writes JSON (format "json") or
// logfmt-style text lines to w.
func NewStructuredConsole(w io.Writer, format string, debug bool) *StructuredConsole {
	if w == nil {
		w = os.Stdout
	}
	logger := logrus.New()
	logger.SetOutput(w)
	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	logger.SetLevel(logrus.InfoLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return &StructuredConsole{logger: logger}
}

// Logger exposes the underlying logger for callers that attach fields.
func (c *StructuredConsole) Logger() *logrus.Logger { return c.logger }

func (c *StructuredConsole) LogInfo(format string, a ...interface{}) {
	c.logger.Infof(format, a...)
}

func (c *StructuredConsole) LogWarning(format string, a ...interface{}) {
	c.logger.Warnf(format, a...)
}

func (c *StructuredConsole) LogError(format string, a ...interface{}) {
	c.logger.Errorf(format, a...)
}

func (c *StructuredConsole) LogSuccess(format string, a ...interface{}) {
	c.logger.WithField("status", "success").Infof(format, a...)
}

func (c *StructuredConsole) LogDebug(format string, a ...interface{}) {
	c.logger.Debugf(format, a...)
}

// Status só registra a mensagem; não há spinner fora de um terminal.
func (c *StructuredConsole) Status(message string) types.StatusHandle {
	c.logger.Info(message)
	return &logStatus{logger: c.logger}
}

type logStatus struct {
	logger *logrus.Logger
}

func (s *logStatus) Update(message string) { s.logger.Debug(message) }
func (s *logStatus) Stop()                 {}

// ProgressWithTotal returns a progress handle that logs nothing.
func (c *StructuredConsole) ProgressWithTotal(int) types.ProgressHandle {
	return noopProgress{}
}

type noopProgress struct{}

func (noopProgress) Increment() {}
func (noopProgress) Stop()      {}

func (c *StructuredConsole) CreateTable() types.TableInterface {
	return newTable()
}
