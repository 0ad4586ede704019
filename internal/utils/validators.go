package utils

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gnomegl/mcavail/internal/client"
	"github.com/gnomegl/mcavail/internal/core"
)

func ValidateTimeout(timeout int) error {
	if timeout < core.MinTimeout || timeout > core.MaxTimeout {
		return core.NewConfigurationError(
			fmt.Sprintf("Invalid timeout: %d must be between %d and %d seconds", timeout, core.MinTimeout, core.MaxTimeout),
			nil,
		)
	}

	if timeout < core.LowTimeoutWarningThreshold {
		fmt.Printf("Warning: Very low timeout (%ds) may cause legitimate lookups to fail\n", timeout)
	}

	return nil
}

func ValidateProxy(proxy string) error {
	if proxy == "" {
		return nil
	}

	if !strings.HasPrefix(proxy, "http://") &&
		!strings.HasPrefix(proxy, "https://") &&
		!strings.HasPrefix(proxy, "socks5://") {
		return core.NewConfigurationError(
			"Invalid proxy: must be http://, https://, or socks5:// URL",
			nil,
		)
	}

	u, err := url.Parse(proxy)
	if err != nil {
		return core.NewConfigurationError(
			fmt.Sprintf("Invalid proxy URL: %v", err),
			err,
		)
	}
	if u.Host == "" {
		return core.NewConfigurationError("Invalid proxy URL: missing host", nil)
	}

	return nil
}

func ValidateImpersonate(name string) error {
	if _, ok := client.UserAgents[name]; !ok {
		known := make([]string, 0, len(client.UserAgents))
		for k := range client.UserAgents {
			known = append(known, k)
		}
		sort.Strings(known)
		return core.NewConfigurationError(
			fmt.Sprintf("Invalid impersonate value %q (known: %s)", name, strings.Join(known, ", ")),
			nil,
		)
	}
	return nil
}

func ValidateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return core.NewConfigurationError(fmt.Sprintf("Invalid API URL: %q", raw), err)
	}
	return nil
}

// ValidatePaths rejects configurations that would overwrite the input with
// the report.
func ValidatePaths(input, output string) error {
	if input == "" || output == "" {
		return core.NewValidationError("input and output paths must not be empty", nil)
	}
	if filepath.Clean(input) == filepath.Clean(output) {
		return core.NewValidationError(
			fmt.Sprintf("output path %s would overwrite the input file", output),
			nil,
		)
	}
	return nil
}
