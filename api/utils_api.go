package api

import (
	"log"
	"net"
	"sync"

	mb "github.com/MarziyaHasanova31/battleship/models/battleship"
)

// lockedSource lets every session share one seeded source.
type lockedSource struct {
	mu  sync.Mutex
	src mb.RandomSource
}

func newLockedSource(src mb.RandomSource) *lockedSource {
	return &lockedSource{src: src}
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

// encoding/json writes []uint8 as base64; the reveal needs a plain list.
func bitsToInts(bits []uint8) []int {
	out := make([]int, len(bits))
	for i, b := range bits {
		out[i] = int(b)
	}
	return out
}

// Finds the first non-loopback IPv4 network of this machine. Falls back
// to loopback so the server still runs on hosts without one.
func getServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(8, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list interfaces:", err)
		return loopback
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip := ipnet.IP.To4(); ip != nil && !ip.IsLoopback() {
				return net.IPNet{IP: ip, Mask: ipnet.Mask}
			}
		}
	}

	log.Println("no external ipv4 network found, using loopback")
	return loopback
}
