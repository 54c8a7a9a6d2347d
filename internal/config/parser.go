package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/markshot/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitKV(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = current.Set(key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "hotkey":
			setHotkeyField(&cfg.Hotkey, key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

// splitKV accepts "key = value" and "key: value" and strips quotes.
func splitKV(line string) (string, string, bool) {
	sep := "="
	if !strings.Contains(line, "=") {
		sep = ":"
	}
	key, value, ok := strings.Cut(line, sep)
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "delay":
		cfg.Delay = value
	case "screen":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid screen %q: %w", value, err)
		}
		cfg.Screen = n
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "capture":
		n.Capture = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	case "error":
		n.Error = b
	}
	return nil
}

func setHotkeyField(h *Hotkey, key, value string) {
	if strings.EqualFold(key, "capture") {
		h.Capture = value
	}
}
