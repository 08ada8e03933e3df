// Package logfile maintains the durable operational log: line-delimited JSON
// records appended to per-stream .log files, rotated by the maintenance
// worker into gzip-compressed, base64-encoded archives.
package logfile

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"sliceco/config"

	"github.com/pkg/errors"
)

const (
	liveSuffix    = ".log"
	archiveSuffix = ".gz.b64"

	// Stream names. Operational errors downstream of a committed success go
	// to the errors stream; notable events go to the messages stream.
	streamMessages = "messages"
	streamErrors   = "errors"
)

// record is the persisted shape of one log line.
type record struct {
	Datetime int64  `json:"datetime"`
	Message  string `json:"message"`
	Data     any    `json:"data,omitempty"`
}

// Log appends structured records to live .log files under a base directory
// and rotates them into timestamped archives. Appends are serialized per
// process; rotation racing a concurrent append can drop the line written
// between read and truncate (accepted, see the maintenance worker).
type Log struct {
	baseDir string
	mu      sync.Mutex
}

// NewLog creates an operational log rooted at baseDir.
func NewLog(baseDir string) (*Log, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}

	return &Log{baseDir: baseDir}, nil
}

// New builds the operational log from config for injection.
func New(cfg *config.Config) (*Log, error) {
	return NewLog(cfg.Storage.LogDir)
}

// Message appends an event record to the messages stream.
func (l *Log) Message(message string, data any) error {
	return l.append(streamMessages, message, data)
}

// Error appends an operational-error record to the errors stream.
func (l *Log) Error(message string, data any) error {
	return l.append(streamErrors, message, data)
}

func (l *Log) append(stream, message string, data any) error {
	line, err := json.Marshal(record{
		Datetime: time.Now().UnixMilli(),
		Message:  message,
		Data:     data,
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode log record")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(l.baseDir, stream+liveSuffix), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open log file")
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return errors.Wrap(err, "failed to append log record")
	}

	return nil
}

// List returns the log file names in the base directory: the live .log files
// and, when includeCompressed is set, the rotated archives too.
func (l *Log) List(includeCompressed bool) ([]string, error) {
	dirEntries, err := os.ReadDir(l.baseDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list log directory")
	}

	var files []string
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(name, liveSuffix) {
			files = append(files, name)
		}
		if includeCompressed && strings.HasSuffix(name, archiveSuffix) {
			files = append(files, name)
		}
	}

	return files, nil
}

// Rotate compresses the named live log file into a timestamped archive and
// truncates the live file to empty. A file with no content is left alone.
// Rotation is not exactly-once safe against a concurrent append landing
// between the read and the truncate.
func (l *Log) Rotate(fileName string) error {
	src := filepath.Join(l.baseDir, fileName)

	contents, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrap(err, "failed to read log file")
	}
	if len(contents) == 0 {
		return nil
	}

	archiveName := strings.TrimSuffix(fileName, liveSuffix) +
		"-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + archiveSuffix
	if err := l.writeArchive(archiveName, contents); err != nil {
		return err
	}

	if err := os.Truncate(src, 0); err != nil {
		return errors.Wrap(err, "failed to truncate log file")
	}

	return nil
}

// Decompress reads a rotated archive back into its original contents.
func (l *Log) Decompress(fileName string) (string, error) {
	encoded, err := os.ReadFile(filepath.Join(l.baseDir, fileName))
	if err != nil {
		return "", errors.Wrap(err, "failed to read archive")
	}

	compressed, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return "", errors.Wrap(err, "failed to decode archive")
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", errors.Wrap(err, "failed to open archive")
	}
	defer zr.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(zr); err != nil {
		return "", errors.Wrap(err, "failed to decompress archive")
	}

	return out.String(), nil
}

func (l *Log) writeArchive(archiveName string, contents []byte) error {
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	if _, err := zw.Write(contents); err != nil {
		zw.Close()

		return errors.Wrap(err, "failed to compress log contents")
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "failed to finish compression")
	}

	encoded := base64.StdEncoding.EncodeToString(compressed.Bytes())

	dest, err := os.OpenFile(filepath.Join(l.baseDir, archiveName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to create archive")
	}
	defer dest.Close()

	if _, err := dest.WriteString(encoded); err != nil {
		return errors.Wrap(err, "failed to write archive")
	}

	return nil
}
