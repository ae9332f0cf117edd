// Copyright 2026 The quadmesh/ldp Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package clog provides the leveled logging facade used throughout the
// resource engine, ported from the teacher's clog package: a package-level
// Logger seam plus Infof/Warningf/Errorf/Fatalf helpers and a verbosity
// gate, so call sites never depend on a concrete logging library.
package clog

import "log"

// Logger is the clog logging interface. Any structured or leveled logger
// (zerolog, zap, logrus, ...) can be adapted to it and installed with
// SetLogger; the default falls back to the standard library.
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

var logger Logger = stdlog{}

// SetLogger installs l as the package-wide logger implementation.
func SetLogger(l Logger) {
	if l != nil {
		logger = l
	}
}

var verbosity int

// V reports whether the current verbosity is at or above level. Debug-only
// call sites (e.g. per-quad trace logging in the projection component)
// should guard with `if clog.V(2) { clog.Infof(...) }` to avoid formatting
// costs when not needed.
func V(level int) bool { return verbosity >= level }

// SetV sets the package-wide verbosity level.
func SetV(level int) { verbosity = level }

func Infof(format string, args ...interface{})    { logger.Infof(format, args...) }
func Warningf(format string, args ...interface{}) { logger.Warningf(format, args...) }
func Errorf(format string, args ...interface{})   { logger.Errorf(format, args...) }
func Fatalf(format string, args ...interface{})   { logger.Fatalf(format, args...) }

type stdlog struct{}

func (stdlog) Infof(format string, args ...interface{})    { log.Printf("INFO: "+format, args...) }
func (stdlog) Warningf(format string, args ...interface{}) { log.Printf("WARN: "+format, args...) }
func (stdlog) Errorf(format string, args ...interface{})   { log.Printf("ERROR: "+format, args...) }
func (stdlog) Fatalf(format string, args ...interface{})   { log.Fatalf("FATAL: "+format, args...) }
