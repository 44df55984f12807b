package util

import (
	"net/netip"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ETLDPlusOne returns the registrable domain (eTLD+1) of the URL host.
// IP addresses and single-label hosts are returned unchanged.
func ETLDPlusOne(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}
	if _, err := netip.ParseAddr(host); err == nil {
		return host
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return d
}

// SameBaseDomain reports whether two URLs share a registrable domain.
func SameBaseDomain(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	da, db := ETLDPlusOne(ua), ETLDPlusOne(ub)
	return da != "" && da == db
}
