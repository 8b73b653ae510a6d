package nets

import "net"

type IsLocalAddr func(addr string) (bool, error)

func (Module) IsLocalAddr() IsLocalAddr {
	return func(addr string) (bool, error) {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			// no port
			host = addr
		}
		if host == "" {
			// ":8080" listens on all interfaces
			return false, nil
		}

		ips, err := net.LookupIP(host)
		if err != nil {
			return false, err
		}

		for _, ip := range ips {
			if !ip.IsLoopback() && !ip.IsPrivate() {
				return false, nil
			}
		}

		return len(ips) > 0, nil
	}
}
