package i2c

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"syscall"
)

// I2C is one device on a Linux i2c bus, or a stand-in that logs the
// writes when simulated.
type I2C struct {
	fd      *os.File
	address uint8
	sim     bool
	quiet   bool

	// simulated writes, oldest first
	mu      sync.Mutex
	written [][]byte
}

const (
	i2cSlave = 0x0703
)

// Open a connection to the device at address on /dev/i2c-<bus>
func Open(address uint8, bus int, simulated bool) (*I2C, error) {
	if simulated {
		return &I2C{sim: true, address: address}, nil
	}

	f, err := os.OpenFile(fmt.Sprintf("/dev/i2c-%d", bus), os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	dev := &I2C{fd: f, address: address}
	if err := dev.selectLine(); err != nil {
		f.Close()
		return nil, err
	}
	return dev, nil
}

// Quiet stops a simulated device from logging every write
func (dev *I2C) Quiet(on bool) {
	dev.quiet = on
}

// Close the device
func (dev *I2C) Close() error {
	if dev.sim {
		dev.logMsg("close: 0x%02x", dev.address)
		return nil
	}
	return dev.fd.Close()
}

// Write sends one message to the device. Not safe for two devices on the
// same bus from different goroutines.
func (dev *I2C) Write(buf []byte) (int, error) {
	if err := dev.selectLine(); err != nil {
		return 0, err
	}
	if dev.sim {
		dev.record(buf)
		return len(buf), nil
	}
	return dev.fd.Write(buf)
}

// Written returns a copy of the simulated writes and forgets them
func (dev *I2C) Written() [][]byte {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	ret := dev.written
	dev.written = nil
	return ret
}

func (dev *I2C) record(buf []byte) {
	msg := make([]byte, len(buf))
	copy(msg, buf)

	dev.mu.Lock()
	dev.written = append(dev.written, msg)
	dev.mu.Unlock()

	if dev.quiet {
		return
	}
	var sb strings.Builder
	for _, b := range buf {
		fmt.Fprintf(&sb, "%02x ", b)
	}
	dev.logMsg("write 0x%02x: %s", dev.address, sb.String())
}

func (dev *I2C) logMsg(format string, args ...interface{}) {
	if dev.quiet {
		return
	}
	log.Printf(format, args...)
}

func (dev *I2C) selectLine() error {
	if dev.sim {
		return nil
	}
	return ioctl(dev.fd.Fd(), i2cSlave, uintptr(dev.address))
}

func ioctl(fd, cmd, arg uintptr) error {
	_, _, err := syscall.Syscall6(syscall.SYS_IOCTL, fd, cmd, arg, 0, 0, 0)
	if err != 0 {
		return err
	}
	return nil
}
