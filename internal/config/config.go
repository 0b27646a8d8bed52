package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/ini.v1"

	"kolibri/listcontent/internal/listvalue"
	"kolibri/listcontent/internal/logging"
	"kolibri/listcontent/internal/report"
)

// Section is the INI section read from a defaults file.
const Section = "listcontent"

// Options holds everything a run needs after flags and the defaults file are merged.
type Options struct {
	Database         string
	Output           string // "-" for stdout
	Format           report.Format
	IncludeChannels  []string
	ExcludeChannels  []string
	PickListChannels []string
	OrAvailable      bool
	LogLevel         string
	NoColor          bool
}

// Defaults returns the options used when nothing is configured.
func Defaults() Options {
	return Options{
		Output:      "-",
		Format:      report.FormatPlain,
		OrAvailable: true,
		LogLevel:    logging.DefaultLevel,
	}
}

// LoadFile applies the [listcontent] section of an INI file on top of opts.
// Keys that are absent leave opts unchanged. Channel lists may be comma or
// whitespace separated, or written as indented multi-line values with
// comment lines, the same shape the key-file writer emits.
func LoadFile(path string, opts *Options) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		Insensitive:                true,
	}, path)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}

	sec := cfg.Section(Section)
	if sec.HasKey("database") {
		opts.Database = sec.Key("database").String()
	}
	if sec.HasKey("output") {
		opts.Output = sec.Key("output").String()
	}
	if sec.HasKey("format") {
		if err := opts.Format.Set(sec.Key("format").String()); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	}
	if sec.HasKey("include_channels") {
		opts.IncludeChannels = listvalue.Parse(sec.Key("include_channels").String())
	}
	if sec.HasKey("exclude_channels") {
		opts.ExcludeChannels = listvalue.Parse(sec.Key("exclude_channels").String())
	}
	if sec.HasKey("pick_list_channels") {
		opts.PickListChannels = listvalue.Parse(sec.Key("pick_list_channels").String())
	}
	if sec.HasKey("or_available") {
		v, err := sec.Key("or_available").Bool()
		if err != nil {
			return fmt.Errorf("config %s: or_available: %w", path, err)
		}
		opts.OrAvailable = v
	}
	if sec.HasKey("loglevel") {
		opts.LogLevel = sec.Key("loglevel").String()
	}
	return nil
}

// Validate checks the log level and normalises every channel id.
func (o *Options) Validate() error {
	if _, err := logging.ParseLevel(o.LogLevel); err != nil {
		return err
	}

	var err error
	if o.IncludeChannels, err = NormalizeChannelIDs(o.IncludeChannels); err != nil {
		return fmt.Errorf("include channel: %w", err)
	}
	if o.ExcludeChannels, err = NormalizeChannelIDs(o.ExcludeChannels); err != nil {
		return fmt.Errorf("exclude channel: %w", err)
	}
	if o.PickListChannels, err = NormalizeChannelIDs(o.PickListChannels); err != nil {
		return fmt.Errorf("pick list channel: %w", err)
	}
	return nil
}

// NormalizeChannelID returns id as 32 lowercase hex digits, the form Kolibri
// stores. Dashed and braced UUID spellings are accepted.
func NormalizeChannelID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("invalid channel id %q: %w", id, err)
	}
	return hex.EncodeToString(u[:]), nil
}

// NormalizeChannelIDs normalises every id, dropping duplicates while keeping order.
func NormalizeChannelIDs(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		n, err := NormalizeChannelID(id)
		if err != nil {
			return nil, err
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}

// ChannelFilter returns the include and exclude lists for the channel query.
// Without an include list, pick-list channels are excluded along with the
// explicit excludes: a pick list is a curation reference, not content to install.
func (o *Options) ChannelFilter() (include, exclude []string) {
	if len(o.IncludeChannels) > 0 {
		return o.IncludeChannels, nil
	}
	exclude = append(exclude, o.PickListChannels...)
	exclude = append(exclude, o.ExcludeChannels...)
	return nil, exclude
}
