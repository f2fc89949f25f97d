package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// flogger is what the workers log through
type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ThreadLogger prefixes every line with the worker name
type ThreadLogger struct {
	name string
}

func (tl *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Printf("[%s] %s", tl.name, fmt.Sprintf(format, v...))
}

func (tl *ThreadLogger) Println(v ...interface{}) {
	log.Printf("[%s] %s", tl.name, fmt.Sprint(v...))
}

// setupLogging sends the standard logger to a rotating file, and to stderr
// too when console is set. The returned closer closes the file.
func setupLogging(settings configSettings, console bool) (io.Closer, error) {
	path := settings.GetString(sLogFile)
	if path == "" {
		return nopCloser{}, nil
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    settings.GetInt(sLogMaxSizeMB),
		MaxBackups: settings.GetInt(sLogMaxBackups),
		LocalTime:  true,
	}

	// make sure we can write there before switching over
	if _, err := lj.Write([]byte{}); err != nil {
		return nil, err
	}

	if console {
		log.SetOutput(io.MultiWriter(lj, os.Stderr))
	} else {
		log.SetOutput(lj)
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return lj, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
