package listener

import (
	"context"
	"net"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/seimple/seimple/internal/service"
	errorsUtils "github.com/seimple/seimple/pkg/errors"
	"github.com/seimple/seimple/pkg/logger"
)

const (
	defaultWorkers = 100

	// Worst-case datagram we accept; anything longer is truncated by the
	// kernel read, best-effort per the ingestion contract.
	bufferSize = 64 * 1024

	readDeadline  = 30 * time.Second
	ingestTimeout = 5 * time.Second
)

// UDPListener receives syslog datagrams and drives the write path, one
// bounded worker per datagram. A single malformed or adversarial
// datagram can never stop the loop.
type UDPListener struct {
	conn       *net.UDPConn
	logService service.Log

	workers   int
	semaphore chan struct{}
	wg        sync.WaitGroup

	notify chan error
	done   chan struct{}
}

func New(addr, port string, ls service.Log, opts ...Option) (*UDPListener, error) {
	intPort, err := net.LookupPort("udp", port)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	udpAddr := net.UDPAddr{
		Port: intPort,
		IP:   net.ParseIP(addr),
	}

	conn, err := net.ListenUDP("udp", &udpAddr)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	l := &UDPListener{
		conn:       conn,
		logService: ls,
		workers:    defaultWorkers,
		notify:     make(chan error, 1),
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(l)
	}
	l.semaphore = make(chan struct{}, l.workers)

	log.Infof("UDP listener is running on %s:%d", addr, intPort)
	l.start()

	return l, nil
}

func (l *UDPListener) start() {
	go func() {
		defer close(l.notify)

		buffer := make([]byte, bufferSize)
		for {
			select {
			case <-l.done:
				return
			default:
			}

			l.conn.SetReadDeadline(time.Now().Add(readDeadline))
			n, src, err := l.conn.ReadFromUDP(buffer)
			if err != nil {
				if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
					continue
				}
				select {
				case <-l.done:
					return
				default:
				}
				l.notify <- errorsUtils.WrapPathErr(err)
				return
			}

			datagram := make([]byte, n)
			copy(datagram, buffer[:n])

			select {
			case l.semaphore <- struct{}{}:
				l.wg.Add(1)
				go func(data []byte, src *net.UDPAddr) {
					defer func() {
						<-l.semaphore
						l.wg.Done()
					}()
					l.handle(data, src)
				}(datagram, src)
			default:
				log.Warn("UDP processing at capacity, dropping datagram")
			}
		}
	}()
}

// handle runs Parse -> Normalize -> Store for one datagram and emits the
// per-datagram trace line. The ingest timeout keeps a slow store from
// pinning workers forever.
func (l *UDPListener) handle(data []byte, src *net.UDPAddr) {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	origin := src.IP.String()
	rec, err := l.logService.Ingest(ctx, data, origin)
	if err != nil {
		logger.LogIngestError(origin, err)
		return
	}

	logger.LogStored(rec, src.Port)
}

func (l *UDPListener) Notify() <-chan error {
	return l.notify
}

// Shutdown stops the read loop and waits for in-flight datagrams.
func (l *UDPListener) Shutdown() {
	close(l.done)
	l.conn.Close()
	l.wg.Wait()
}
