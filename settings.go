package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"

	"dscheirer.com/macropad/pad"
)

// setting names
const (
	sTickInterval     = "tickInterval"
	sSettleDelay      = "settleDelay"
	sStartupDelay     = "startupDelay"
	sDebounceTicks    = "debounceTicks"
	sEncoderStuckWarn = "encoderStuckWarn"
	sKeyBrightness    = "keyBrightness"
	sRingBrightness   = "ringBrightness"
	sSimulated        = "simulated"
	sLEDBackend       = "ledBackend"
	sI2CBus           = "i2cBus"
	sI2CDev           = "i2cDevice"
	sSeesawPin        = "seesawPin"
	sHIDBackend       = "hidBackend"
	sMIDIPort         = "midiPort"
	sMIDIChannel      = "midiChannel"
	sWatchdogDevice   = "watchdogDevice"
	sBootProgram      = "bootProgram"
	sStatusAddr       = "statusAddr"
	sStatusUser       = "statusUser"
	sStatusSecret     = "statusSecret"
	sLogFile          = "logFile"
	sLogMaxSizeMB     = "logMaxSizeMB"
	sLogMaxBackups    = "logMaxBackups"
	sDebug            = "debugDump"
	sBindings         = "bindings"

	sPinEncA  = "pinEncA"
	sPinEncB  = "pinEncB"
	sPinEncSw = "pinEncSw"
)

// per-key settings are "pinKey1".."pinKey6" and "hueKey1".."hueKey6"
func sPinKey(id int) string { return fmt.Sprintf("pinKey%d", id) }
func sHueKey(id int) string { return fmt.Sprintf("hueKey%d", id) }

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sTickInterval] = time.Millisecond
	s[sSettleDelay] = 5 * time.Millisecond
	s[sStartupDelay] = 500 * time.Millisecond
	s[sDebounceTicks] = 1
	s[sEncoderStuckWarn] = 2 * time.Second
	s[sKeyBrightness] = byte(2)
	s[sRingBrightness] = byte(0)
	s[sLEDBackend] = "seesaw"
	s[sI2CBus] = 1
	s[sI2CDev] = byte(0x60)
	s[sSeesawPin] = byte(15)
	s[sHIDBackend] = "log"
	s[sMIDIPort] = ""
	s[sMIDIChannel] = byte(0)
	s[sWatchdogDevice] = "/dev/watchdog"
	s[sBootProgram] = "/usr/local/bin/macropad-update"
	s[sStatusAddr] = ":8080"
	s[sStatusUser] = "macropad"
	s[sStatusSecret] = ""
	s[sLogFile] = "/var/log/macropad.log"
	s[sLogMaxSizeMB] = 5
	s[sLogMaxBackups] = 3
	s[sDebug] = false

	// BCM numbering
	keyPins := []int{5, 6, 13, 19, 26, 21}
	for i, p := range keyPins {
		s[sPinKey(i+1)] = p
	}
	s[sPinEncA] = 17
	s[sPinEncB] = 27
	s[sPinEncSw] = 22

	for i, h := range pad.DefaultKeyHues {
		s[sHueKey(i+1)] = byte(h)
	}

	on := true
	if runtime.GOARCH == "arm" || runtime.GOARCH == "arm64" {
		on = false
	}
	s[sSimulated] = on

	return configSettings{settings: s}
}

func (s configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		_, dataType, _, err := jsonparser.Get(data, k)
		if err != nil || dataType == jsonparser.NotExist {
			continue
		}

		switch initVal.(type) {
		case uint8:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err != nil {
				// "0x60" style strings
				var str string
				str, err = jsonparser.GetString(data, k)
				if err == nil {
					val, err = strconv.ParseInt(str, 0, 64)
				}
			}
			if err == nil && (val < 0 || val > 0xFF) {
				err = fmt.Errorf("%d does not fit in a byte", val)
			}
			if err == nil {
				s.settings[k] = byte(val)
			}
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try "true" and "false"
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		default:
			err = fmt.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return errors.Wrapf(err, "setting %s", k)
		}
	}

	// the binding table is kept as name -> action strings
	bindings, err := bindingsFromJSON(data)
	if err != nil {
		return err
	}
	s.settings[sBindings] = bindings
	return nil
}

func bindingsFromJSON(data []byte) (map[string]string, error) {
	ret := make(map[string]string)
	raw, dataType, _, err := jsonparser.Get(data, sBindings)
	if dataType == jsonparser.NotExist {
		return ret, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "bindings")
	}
	if dataType != jsonparser.Object {
		return nil, errors.Errorf("bindings must be an object, got %s", dataType)
	}
	err = jsonparser.ObjectEach(raw, func(key []byte, value []byte, vt jsonparser.ValueType, _ int) error {
		if vt != jsonparser.String {
			return errors.Errorf("binding %s must be a string", key)
		}
		str, err := jsonparser.ParseString(value)
		if err != nil {
			return err
		}
		ret[string(key)] = str
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "bindings")
	}
	return ret, nil
}

func initSettings(configFile string) (configSettings, error) {
	log.Println("initSettings")

	// defaults
	s := defaultSettings()

	// try to open the config file
	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return s, errors.Wrapf(err, "could not load config file '%s'", configFile)
	}

	log.Printf("Reading configuration from '%s'", configFile)

	// json parse it
	if err := s.settingsFromJSON(data); err != nil {
		return s, errors.Wrapf(err, "bad config file '%s'", configFile)
	}

	return s, nil
}

func (s configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s configSettings) GetByte(key string) byte {
	switch v := s.settings[key].(type) {
	case byte:
		return v
	case int: // cast to byte
		return byte(v)
	default:
		return 0
	}
}

func (s configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	case byte:
		return int(v)
	default:
		return 0
	}
}

// GetBindings is the user binding overrides, event name -> action
func (s configSettings) GetBindings() map[string]string {
	switch v := s.settings[sBindings].(type) {
	case map[string]string:
		return v
	default:
		return map[string]string{}
	}
}

func (s configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == sStatusSecret {
			log.Printf("%s : <hidden>", k)
			continue
		}
		v := s.settings[k]
		log.Printf("%s : %T: %v", k, v, v)
	}
}
