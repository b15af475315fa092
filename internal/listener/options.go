package listener

type Option func(*UDPListener)

// Workers caps how many datagrams may be in flight at once.
func Workers(n int) Option {
	return func(l *UDPListener) {
		if n > 0 {
			l.workers = n
		}
	}
}
