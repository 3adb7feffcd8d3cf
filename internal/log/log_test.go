// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLoggerTo_Levels(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantWarn  bool
		wantDebug bool
	}{
		{"default is error", "", false, false},
		{"warn", "warn", true, false},
		{"debug", "DEBUG", true, true},
		{"trace", "trace", true, true},
		{"unknown falls back to error", "chatty", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			InitLoggerTo(&buf, tt.spec)

			Warnf("persist failed: %s", "quota")
			assert.Equal(t, tt.wantWarn, bytes.Contains(buf.Bytes(), []byte(" W persist failed: quota")))

			buf.Reset()
			Debugf("loading %d", 3)
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte(" D loading 3")))
		})
	}
}

func TestTracef_OnlyWhenTraceEnabled(t *testing.T) {
	var buf bytes.Buffer

	InitLoggerTo(&buf, "debug")
	Tracef("hidden")
	assert.Empty(t, buf.String())

	InitLoggerTo(&buf, "trace")
	Tracef("shown %d", 1)
	assert.Contains(t, buf.String(), " T shown 1")
}

func TestHandler_Fields(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "warn")

	WithError(errors.New("disk full")).Warn("slot write failed")

	assert.Contains(t, buf.String(), "slot write failed error=disk full")
}
