// Package proxy reads HTTP proxy settings from the environment and renders
// them as JVM system properties for build tools.
package proxy

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Config is one proxy endpoint for a protocol.
type Config struct {
	// Protocol is "http" or "https": the JVM property namespace.
	Protocol string
	Host     string
	Port     string
	User     string
	Password string
}

// Settings is the complete proxy environment.
type Settings struct {
	Proxies       []Config
	NonProxyHosts []string
}

// IsEmpty reports whether no proxy is configured.
func (s Settings) IsEmpty() bool {
	return len(s.Proxies) == 0
}

var envByProtocol = []struct {
	protocol string
	names    []string
}{
	{"http", []string{"http_proxy", "HTTP_PROXY"}},
	{"https", []string{"https_proxy", "HTTPS_PROXY"}},
}

// FromEnv reads http_proxy, https_proxy and no_proxy (lower case first, then
// upper case). Unparseable URLs are skipped and reported in the returned
// error; valid entries are still returned.
func FromEnv(getenv func(string) string) (Settings, error) {
	var (
		settings Settings
		errs     []error
	)

	for _, p := range envByProtocol {
		raw, name := lookup(getenv, p.names...)
		if raw == "" {
			continue
		}
		cfg, err := Parse(p.protocol, raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		settings.Proxies = append(settings.Proxies, cfg)
	}

	if raw, _ := lookup(getenv, "no_proxy", "NO_PROXY"); raw != "" {
		settings.NonProxyHosts = parseNoProxy(raw)
	}

	return settings, errors.Join(errs...)
}

// Parse extracts host, port and credentials from a proxy URL. A URL without
// a scheme is read as http://. Missing ports default to 80 for http:// proxy
// URLs and 443 for https:// ones.
func Parse(protocol, raw string) (Config, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("invalid proxy URL: %w", err)
	}
	host := u.Hostname()
	if host == "" {
		return Config{}, fmt.Errorf("invalid proxy URL %q: missing host", raw)
	}

	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		default:
			return Config{}, fmt.Errorf("invalid proxy URL %q: unsupported scheme %q without port", raw, u.Scheme)
		}
	}

	cfg := Config{Protocol: protocol, Host: host, Port: port}
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Password, _ = u.User.Password()
	}
	return cfg, nil
}

// SystemProperties renders the settings as -D arguments. Every property is
// emitted twice: plainly for the JVM and with the systemProp. prefix used by
// Gradle's own property namespace.
func (s Settings) SystemProperties() []string {
	var props []string
	add := func(key, value string) {
		props = append(props, "-D"+key+"="+value, "-DsystemProp."+key+"="+value)
	}

	for _, p := range s.Proxies {
		add(p.Protocol+".proxyHost", p.Host)
		add(p.Protocol+".proxyPort", p.Port)
		if p.User != "" {
			add(p.Protocol+".proxyUser", p.User)
		}
		if p.Password != "" {
			add(p.Protocol+".proxyPassword", p.Password)
		}
	}

	if len(s.Proxies) > 0 && len(s.NonProxyHosts) > 0 {
		// The JVM reads http.nonProxyHosts for both protocols.
		add("http.nonProxyHosts", strings.Join(s.NonProxyHosts, "|"))
	}

	return props
}

// Redacted renders props for logging with password values masked.
func Redacted(props []string) []string {
	out := make([]string, len(props))
	for i, p := range props {
		if key, _, ok := strings.Cut(p, "="); ok && strings.HasSuffix(key, ".proxyPassword") {
			out[i] = key + "=****"
			continue
		}
		out[i] = p
	}
	return out
}

func lookup(getenv func(string) string, names ...string) (value, name string) {
	for _, n := range names {
		if v := getenv(n); v != "" {
			return v, n
		}
	}
	return "", ""
}

// parseNoProxy converts "a.com,.b.com" into JVM patterns "a.com", "*.b.com".
func parseNoProxy(raw string) []string {
	var hosts []string
	for h := range strings.SplitSeq(raw, ",") {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if strings.HasPrefix(h, ".") {
			h = "*" + h
		}
		hosts = append(hosts, h)
	}
	return hosts
}
