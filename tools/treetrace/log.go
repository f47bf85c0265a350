// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"io"
	"log"
	"time"
)

// Log is a logger printing the time elapsed since its creation in front of
// every message.
type Log struct {
	start  time.Time
	logger *log.Logger
}

// NewLog creates a logger writing to the given output.
func NewLog(out io.Writer) *Log {
	return &Log{start: time.Now(), logger: log.New(out, "", log.LstdFlags)}
}

// Print logs a message that includes the time elapsed since the start of the program.
func (l *Log) Print(msg string) {
	now := time.Now()
	t := uint64(now.Sub(l.start).Seconds())
	l.logger.Printf("[t=%4d:%02d] - %s\n", t/60, t%60, msg)
}

// Printf logs a formatted message that includes the time elapsed since the start of the program.
func (l *Log) Printf(format string, v ...any) {
	l.Print(fmt.Sprintf(format, v...))
}

// logObserver reports the operations of tree engines to a Log.
type logObserver struct {
	log  *Log
	last string
}

func (o *logObserver) StartOperation(name string) {
	o.log.Printf("Starting %s ...", name)
}

func (o *logObserver) StepRecorded(_ int, message string) {
	o.last = message
}

func (o *logObserver) EndOperation(name string, steps int) {
	if steps == 0 {
		o.log.Printf("Finished %s without steps", name)
		return
	}
	o.log.Printf("Finished %s after %d steps: %s", name, steps, o.last)
}
