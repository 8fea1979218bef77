package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activateMessage = "activate\n"

// InstanceGuard holds the single-instance lock. A second launch connects to
// it to bring the running window forward.
type InstanceGuard struct {
	listener    net.Listener
	address     string
	activations chan struct{}
	closeOnce   sync.Once
}

// AcquireSingleInstance binds a localhost port derived from name.
func AcquireSingleInstance(name string) (*InstanceGuard, error) {
	address := instanceAddress(name)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	guard := &InstanceGuard{
		listener:    listener,
		address:     listener.Addr().String(),
		activations: make(chan struct{}, 1),
	}
	go guard.accept()
	return guard, nil
}

// SignalRunningInstance asks the instance holding the lock to activate.
func SignalRunningInstance(name string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(name), time.Second)
	if err != nil {
		return fmt.Errorf("signal running instance: %w", err)
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	if _, err := conn.Write([]byte(activateMessage)); err != nil {
		return fmt.Errorf("signal running instance: %w", err)
	}
	return nil
}

// Activations delivers one value per activation request. Bursts collapse.
func (guard *InstanceGuard) Activations() <-chan struct{} {
	return guard.activations
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	var err error
	guard.closeOnce.Do(func() {
		err = guard.listener.Close()
	})
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func (guard *InstanceGuard) accept() {
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		go guard.handle(conn)
	}
}

func (guard *InstanceGuard) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))

	buf := make([]byte, len(activateMessage))
	n, _ := conn.Read(buf)
	if string(buf[:n]) != activateMessage {
		return
	}
	select {
	case guard.activations <- struct{}{}:
	default:
	}
}

func instanceAddress(name string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(name))
}

func portFromName(name string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(name))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
