// Package logs configures the console and file log output of the rewards node.
package logs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	joonix "github.com/joonix/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var _ = logrus.Hook(&WriterHook{})

// WriterHook writes every entry of the given levels to its own logger.
type WriterHook struct {
	LogLevels []logrus.Level
	Logger    *logrus.Logger
}

// Fire replays the entry on the hook logger.
func (hook *WriterHook) Fire(entry *logrus.Entry) error {
	hook.Logger.WithFields(entry.Data).WithTime(entry.Time).Log(entry.Level, entry.Message)
	return nil
}

// Levels defines on which log levels this hook would trigger.
func (hook *WriterHook) Levels() []logrus.Level {
	return hook.LogLevels
}

// Formatter returns the logrus formatter of a log format name: text, fluentd or json.
func Formatter(format string, disableColors bool) (logrus.Formatter, error) {
	switch format {
	case "text":
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		formatter.DisableColors = disableColors
		return formatter, nil
	case "fluentd":
		return joonix.NewFormatter(), nil
	case "json":
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, errors.Errorf("unknown log format %s", format)
	}
}

// ConfigurePersistentLogging adds a hook to the standard logger appending every entry to the
// log file in the given format. Missing parent directories are created with 0700 permissions.
func ConfigurePersistentLogging(logFileName string, format string) error {
	logrus.WithField("logFileName", logFileName).Info("Logs will be made persistent")
	formatter, err := Formatter(format, true)
	if err != nil {
		return err
	}
	dir := filepath.Dir(logFileName)
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrap(err, "could not create log directory")
		}
	case err != nil:
		return err
	case info.Mode().Perm() != 0700:
		return errors.Errorf("dir %s already exists without proper 0700 permissions", dir)
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304
	if err != nil {
		return err
	}

	fileLogger := logrus.New()
	fileLogger.SetOutput(f)
	fileLogger.SetFormatter(formatter)
	fileLogger.SetLevel(logrus.TraceLevel)
	// Replaying a panic entry would panic a second time.
	logrus.AddHook(&WriterHook{
		LogLevels: logrus.AllLevels[logrus.FatalLevel:],
		Logger:    fileLogger,
	})

	logrus.Info("File logging initialized")
	return nil
}

// MaskCredentialsLogging masks the url credentials before logging for security purpose
// [scheme:][//[userinfo@]host][/]path[?query][#fragment] -->  [scheme:][//[***]host][/***][#***]
// if the format is not matched nothing is done, string is returned as is.
func MaskCredentialsLogging(currUrl string) string {
	masked := currUrl
	u, err := url.Parse(currUrl)
	if err != nil {
		return currUrl
	}
	if u.User != nil {
		masked = strings.Replace(masked, u.User.String(), "***", 1)
	}
	if len(u.RequestURI()) > 1 { // Ignore the '/'
		masked = strings.Replace(masked, u.RequestURI(), "/***", 1)
	}
	if len(u.Fragment) > 0 {
		masked = strings.Replace(masked, u.RawFragment, "***", 1)
	}
	return masked
}
