package main

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestTestConfig(t *testing.T) {
	assert.Equal(t, testSettings.GetDuration(sTickInterval), time.Millisecond)
	assert.Equal(t, testSettings.GetDuration(sStartupDelay), time.Duration(0))
	assert.Equal(t, testSettings.GetString(sLEDBackend), "log")
	assert.Equal(t, testSettings.GetByte(sI2CDev), byte(0x60))
	assert.Equal(t, testSettings.GetString(sWatchdogDevice), "")
	assert.DeepEqual(t, testSettings.GetBindings(), map[string]string{"key1.held": "none"})
	// untouched keys keep their defaults
	assert.Equal(t, testSettings.GetInt(sPinKey(1)), 5)
	assert.Equal(t, testSettings.GetByte(sKeyBrightness), byte(2))
}

func TestSettingsFromJSON(t *testing.T) {
	s := defaultSettings()
	err := s.settingsFromJSON([]byte(`{
		"settleDelay": "7ms",
		"debounceTicks": 3,
		"simulated": "false",
		"seesawPin": 12,
		"hueKey3": "0x20",
		"midiPort": "loopMIDI",
		"unknownKey": 5
	}`))
	assert.NilError(t, err)
	assert.Equal(t, s.GetDuration(sSettleDelay), 7*time.Millisecond)
	assert.Equal(t, s.GetInt(sDebounceTicks), 3)
	assert.Equal(t, s.GetBool(sSimulated), false)
	assert.Equal(t, s.GetByte(sSeesawPin), byte(12))
	assert.Equal(t, s.GetByte(sHueKey(3)), byte(0x20))
	assert.Equal(t, s.GetString(sMIDIPort), "loopMIDI")
	assert.Equal(t, len(s.GetBindings()), 0)
}

func TestSettingsErrors(t *testing.T) {
	bad := []string{
		`{"settleDelay": "soon"}`,
		`{"seesawPin": 300}`,
		`{"debounceTicks": "many"}`,
		`{"bindings": ["key1.pressed"]}`,
		`{"bindings": {"key1.pressed": 5}}`,
	}
	for _, b := range bad {
		s := defaultSettings()
		assert.Assert(t, s.settingsFromJSON([]byte(b)) != nil, b)
	}
}

func TestMissingConfig(t *testing.T) {
	s, err := initSettings("./test/nope.conf")
	assert.ErrorContains(t, err, "could not load config file")
	// still usable
	assert.Equal(t, s.GetDuration(sSettleDelay), 5*time.Millisecond)
}

func TestTypedGetters(t *testing.T) {
	s := defaultSettings()
	assert.Equal(t, s.GetString(sTickInterval), "")
	assert.Equal(t, s.GetBool(sLogFile), false)
	assert.Equal(t, s.GetDuration(sLogFile), time.Duration(-1))
	assert.Equal(t, s.GetInt(sKeyBrightness), 2)
	assert.Equal(t, s.GetByte(sI2CBus), byte(1))
}
