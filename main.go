package main

import (
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// macropad -config={config file}

func buildRuntime(settings configSettings) (runtimeConfig, []io.Closer, error) {
	rt := initRuntime(settings, clockwork.NewRealClock())
	closers := make([]io.Closer, 0)
	simulated := settings.GetBool(sSimulated)

	if simulated {
		rt.pins = newKeyboardPins(rt.comms)
	} else {
		rt.pins = &rpioPins{}
	}

	switch backend := settings.GetString(sLEDBackend); backend {
	case "seesaw":
		leds, err := openSeesawLed(settings)
		if err != nil {
			return rt, closers, err
		}
		closers = append(closers, leds)
		rt.leds = leds
	case "term":
		if !simulated {
			return rt, closers, errors.New("the term led backend needs simulated mode")
		}
		rt.leds = newTermLed()
	case "log":
		rt.leds = newLogLed()
	default:
		return rt, closers, errors.Errorf("unknown led backend '%s'", backend)
	}

	switch backend := settings.GetString(sHIDBackend); backend {
	case "log":
		rt.hid = newLogHID()
	case "midi":
		mh, err := openMIDIHID(settings)
		if err != nil {
			return rt, closers, err
		}
		rt.hid = mh
		closers = append(closers, closerFunc(mh.close))
	default:
		return rt, closers, errors.Errorf("unknown hid backend '%s'", backend)
	}

	if dev := settings.GetString(sWatchdogDevice); dev == "" || simulated {
		rt.watchdog = &noWatchdog{}
	} else {
		rt.watchdog = newDevWatchdog(dev)
	}

	rt.boot = newExecBootloader(settings.GetString(sBootProgram))

	if settings.GetString(sStatusAddr) != "" {
		rt.status = &httpStatusService{}
	}
	return rt, closers, nil
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

func main() {
	configFile := flag.String("config", "/etc/default/macropad/macropad.conf", "Config file path")
	flag.Parse()

	settings, err := initSettings(*configFile)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			log.Fatal(err)
		}
		log.Printf("%s, using defaults", err)
	}

	// the simulator owns the terminal
	logCloser, err := setupLogging(settings, !settings.GetBool(sSimulated))
	if err != nil {
		log.Fatal(errors.Wrap(err, "could not open the log file"))
	}
	defer logCloser.Close()

	settings.Dump()

	rt, closers, err := buildRuntime(settings)
	for _, c := range closers {
		defer c.Close()
	}
	if err != nil {
		log.Println(err)
		return
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sigs:
			log.Printf("got %s, stopping", s)
			rt.comms.stop()
		case <-rt.comms.quit:
		}
	}()

	startMacropad(rt)
	if rt.status != nil {
		startStatusService(rt)
	}

	// wait for all threads to exit
	wg.Wait()
	log.Println("exiting macropad")
}
