package bridge

import (
	"fmt"
	"net/url"
	"strconv"
)

// Binding is the dev server bind target derived once at initialization.
type Binding struct {
	Hostname string
	Port     int
	Secure   bool
	Origin   string
}

// ResolveBinding derives the dev server binding from the shared config. An
// explicit origin wins outright for hostname, port and scheme; otherwise one
// is synthesized from host, port and the https flag. The input values are
// never mutated.
func ResolveBinding(host Host, port string, https bool, origin string) (Binding, error) {
	if origin == "" {
		scheme := "http"
		if https {
			scheme = "https"
		}
		origin = fmt.Sprintf("%s://%s:%s", scheme, host.Address(), port)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return Binding{}, fmt.Errorf("%w: %q: %v", ErrMalformedOrigin, origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Binding{}, fmt.Errorf("%w: %q: scheme must be http or https", ErrMalformedOrigin, origin)
	}
	if u.Hostname() == "" {
		return Binding{}, fmt.Errorf("%w: %q: missing hostname", ErrMalformedOrigin, origin)
	}

	secure := u.Scheme == "https"

	portNum := 80
	if secure {
		portNum = 443
	}
	if p := u.Port(); p != "" {
		portNum, err = strconv.Atoi(p)
		if err != nil {
			return Binding{}, fmt.Errorf("%w: %q: %v", ErrMalformedOrigin, origin, err)
		}
	}

	return Binding{
		Hostname: u.Hostname(),
		Port:     portNum,
		Secure:   secure,
		Origin:   origin,
	}, nil
}

// Addr returns the host:port form used to bind the dev server listener.
func (b Binding) Addr() string {
	return fmt.Sprintf("%s:%d", b.Hostname, b.Port)
}
