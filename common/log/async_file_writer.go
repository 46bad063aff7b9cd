package log

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/natefinch/lumberjack"
)

const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 10
	defaultMaxAgeDays = 7
)

// AsyncFileWriter buffers log lines in a channel and writes them from a single
// goroutine into a size-rotated file.
type AsyncFileWriter struct {
	sync.Mutex

	filename string
	fd       *lumberjack.Logger

	wg      sync.WaitGroup
	started int32
	buf     chan []byte
	stop    chan struct{}
}

func NewAsyncFileWriter(filename string, bufSize int64) *AsyncFileWriter {
	return &AsyncFileWriter{
		filename: filename,
		buf:      make(chan []byte, bufSize),
		stop:     make(chan struct{}),
	}
}

func (w *AsyncFileWriter) InitLogFile() error {
	w.Lock()
	defer w.Unlock()

	w.fd = &lumberjack.Logger{
		Filename:   w.filename,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
		Compress:   true,
	}
	return nil
}

func (w *AsyncFileWriter) Start() {
	if !atomic.CompareAndSwapInt32(&w.started, 0, 1) {
		return
	}
	if w.fd == nil {
		w.InitLogFile()
	}

	w.wg.Add(1)
	go func() {
		defer func() {
			atomic.StoreInt32(&w.started, 0)

			w.flushBuffer()
			w.wg.Done()
		}()

		for {
			select {
			case msg, ok := <-w.buf:
				if !ok {
					fmt.Fprintln(os.Stderr, "buf channel has been closed.")
					return
				}
				w.SyncWrite(msg)
			case <-w.stop:
				return
			}
		}
	}()
}

func (w *AsyncFileWriter) flushBuffer() {
	for {
		select {
		case msg := <-w.buf:
			w.SyncWrite(msg)
		default:
			return
		}
	}
}

func (w *AsyncFileWriter) SyncWrite(msg []byte) {
	w.Lock()
	defer w.Unlock()
	if w.fd != nil {
		w.fd.Write(msg)
	}
}

// Stop drains the buffer and waits for the writer goroutine to exit.
func (w *AsyncFileWriter) Stop() {
	if atomic.LoadInt32(&w.started) == 0 {
		return
	}
	w.stop <- struct{}{}
	w.wg.Wait()
	w.Close()
}

func (w *AsyncFileWriter) Write(msg []byte) (n int, err error) {
	// the caller may reuse msg once Write returns
	buf := make([]byte, len(msg))
	copy(buf, msg)

	select {
	case w.buf <- buf:
	default:
	}
	return len(msg), nil
}

func (w *AsyncFileWriter) Rotate() error {
	w.Lock()
	defer w.Unlock()
	if w.fd == nil {
		return nil
	}
	return w.fd.Rotate()
}

func (w *AsyncFileWriter) Close() error {
	w.Lock()
	defer w.Unlock()
	if w.fd == nil {
		return nil
	}
	return w.fd.Close()
}
