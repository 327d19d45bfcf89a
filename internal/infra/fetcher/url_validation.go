package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"syscall"
	"time"
)

// sharedAddressSpace is the carrier-grade NAT range of RFC 6598.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// validateURL accepts absolute http(s) URLs with a host. When denyPrivateIPs
// is set the host must not be, or resolve to, a blocked address (see
// isBlockedAddr). The dialer repeats the address check on connect, so a name
// that resolves differently the second time is still refused.
func validateURL(ctx context.Context, rawURL string, denyPrivateIPs bool) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}

	// url.Parse lowercases the scheme
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if isBlockedAddr(addr) {
			return fmt.Errorf("%w: %s", ErrPrivateIP, addr)
		}
		return nil
	}

	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, host, err)
	}
	for _, addr := range addrs {
		if isBlockedAddr(addr) {
			return fmt.Errorf("%w: hostname '%s' resolves to %s", ErrPrivateIP, host, addr)
		}
	}
	return nil
}

// isBlockedAddr reports whether addr is loopback, private (RFC 1918, fc00::/7),
// link-local, multicast, unspecified or in the shared address space.
// IPv4-mapped IPv6 addresses are judged as IPv4.
func isBlockedAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast() ||
		addr.IsMulticast() ||
		addr.IsUnspecified() ||
		sharedAddressSpace.Contains(addr)
}

// newDialer returns the dialer of the fetch transport. With denyPrivateIPs it
// refuses to connect to a blocked address whatever DNS answered earlier.
func newDialer(denyPrivateIPs bool) *net.Dialer {
	d := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	if denyPrivateIPs {
		d.Control = func(_, address string, _ syscall.RawConn) error {
			ap, err := netip.ParseAddrPort(address)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidURL, err)
			}
			if isBlockedAddr(ap.Addr()) {
				return fmt.Errorf("%w: %s", ErrPrivateIP, ap.Addr())
			}
			return nil
		}
	}
	return d
}
