package session

import (
	"log/slog"
	"net/netip"
	"strings"

	"github.com/dmitrymomot/browsersession/pkg/logger"
)

// resolveDomain picks the cookie Domain attribute.
//
// An explicit setting always wins. Otherwise the server name is used with
// its port and leading dots stripped. Names without a dot cannot carry
// cookies in most browsers and yield no domain. Non-IP names get a leading
// dot when the cookie covers the whole site so subdomains share it.
func resolveDomain(explicit *string, serverName, path string, log *slog.Logger) string {
	if explicit != nil {
		if *explicit == "false" {
			return ""
		}
		return *explicit
	}

	if serverName == "" {
		return ""
	}

	host := serverName
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !isIP(host) {
		host = host[:i]
	}
	host = strings.TrimLeft(strings.Trim(host, "[]"), ".")

	if !strings.Contains(host, ".") {
		log.Warn("server name is not a valid cookie domain, session cookie is host-only",
			logger.Component("session"),
			logger.Host(host),
			slog.String("suggestion", host+".localdomain"),
		)
		return ""
	}

	ip := isIP(host)
	if ip {
		log.Warn("server name is an IP address, cookies scoped to IPs behave differently across browsers",
			logger.Component("session"),
			logger.Host(host),
		)
	}

	if path == "/" && !ip {
		host = "." + host
	}
	return host
}

func isIP(host string) bool {
	_, err := netip.ParseAddr(strings.Trim(host, "[]"))
	return err == nil
}
