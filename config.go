package mboxevent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// ExtraParams is a bitfield selecting optional parameters the notifier
// should compute in addition to the per-kind baseline.
type ExtraParams uint32

const (
	ExtraTimestamp ExtraParams = 1 << iota
	ExtraModseq
	ExtraFlagNames
	ExtraClientAddress
	ExtraDiskUsed
	ExtraMessages
	ExtraUidnext
	ExtraMessageSize
	ExtraBodyStructure
	ExtraEnvelope
	ExtraMessageContent
	ExtraMidset
	ExtraUnseenMessages
	ExtraPid
	ExtraSessionID
	ExtraClientID
	ExtraMailboxID
	ExtraMbtype
	ExtraDAVFilename
	ExtraDAVUID
	ExtraConvStatus
	ExtraConversationID
	ExtraMailboxACL
)

// extraParamNames maps config file tokens to bits.
var extraParamNames = map[string]ExtraParams{
	"timestamp":              ExtraTimestamp,
	"modseq":                 ExtraModseq,
	"flagNames":              ExtraFlagNames,
	"clientAddress":          ExtraClientAddress,
	"diskUsed":               ExtraDiskUsed,
	"messages":               ExtraMessages,
	"uidnext":                ExtraUidnext,
	"messageSize":            ExtraMessageSize,
	"bodyStructure":          ExtraBodyStructure,
	"vnd.cmu.envelope":       ExtraEnvelope,
	"messageContent":         ExtraMessageContent,
	"vnd.cmu.midset":         ExtraMidset,
	"vnd.cmu.unseenMessages": ExtraUnseenMessages,
	"pid":                    ExtraPid,
	"vnd.cmu.sessionId":      ExtraSessionID,
	"vnd.fastmail.clientId":  ExtraClientID,
	"mailboxID":              ExtraMailboxID,
	"vnd.cmu.mbtype":         ExtraMbtype,
	"vnd.cmu.davFilename":    ExtraDAVFilename,
	"vnd.cmu.davUid":         ExtraDAVUID,
	"vnd.cmu.convStatus":     ExtraConvStatus,
	"vnd.cmu.cid":            ExtraConversationID,
	"vnd.cmu.mailboxACL":     ExtraMailboxACL,
}

// Has reports whether all bits in mask are set.
func (e ExtraParams) Has(mask ExtraParams) bool { return e&mask == mask }

// InclusionMode selects which byte range of a new message accompanies a
// MessageNew/MessageAppend notification.
type InclusionMode int

const (
	// IncludeStandard includes the full message, or nothing at all when
	// the message exceeds the configured truncation size.
	IncludeStandard InclusionMode = iota
	// IncludeMessage includes the message truncated to the size threshold.
	IncludeMessage
	// IncludeHeader includes only the header, truncated.
	IncludeHeader
	// IncludeBody includes only the body, truncated.
	IncludeBody
	// IncludeHeaderBody includes the full header plus the truncated body.
	IncludeHeaderBody
)

var inclusionModeNames = map[string]InclusionMode{
	"standard":   IncludeStandard,
	"message":    IncludeMessage,
	"header":     IncludeHeader,
	"body":       IncludeBody,
	"headerbody": IncludeHeaderBody,
}

// Config is the resolved, immutable notifier configuration. It is built
// once (programmatically or via LoadConfig) and read concurrently by every
// session afterwards; nothing in this package mutates it.
type Config struct {
	// NotifierName names the downstream notifier. Empty disables
	// notification construction entirely.
	NotifierName string

	// EnabledCategories toggles whole event categories.
	EnabledCategories map[Category]bool

	// Extra selects optional parameters beyond the per-kind baseline.
	Extra ExtraParams

	// ExcludedFlags are flag names (case-insensitive) never reported in
	// flagNames.
	ExcludedFlags []string

	// ExcludedSpecialUse are special-use attributes (e.g. \Junk) whose
	// folders never produce notifications.
	ExcludedSpecialUse []string

	// ContentInclusion selects the byte range policy for messageContent.
	ContentInclusion InclusionMode

	// ContentTruncation is the truncation size threshold in bytes.
	// Zero means unlimited.
	ContentTruncation int64
}

// Enabled reports whether the notifier is active at all.
func (c *Config) Enabled() bool {
	return c != nil && c.NotifierName != ""
}

func (c *Config) categoryEnabled(cat Category) bool {
	if !c.Enabled() {
		return false
	}
	return c.EnabledCategories[cat]
}

func (c *Config) flagExcluded(flag string) bool {
	for _, f := range c.ExcludedFlags {
		if strings.EqualFold(f, flag) {
			return true
		}
	}
	return false
}

func (c *Config) specialUseExcluded(attrs []string) bool {
	for _, a := range attrs {
		for _, x := range c.ExcludedSpecialUse {
			if strings.EqualFold(a, x) {
				return true
			}
		}
	}
	return false
}

// FileConfig is the YAML representation of the notifier configuration.
type FileConfig struct {
	Notifier           string   `yaml:"notifier"`
	Categories         []string `yaml:"categories"`
	ExtraParams        []string `yaml:"extra_params"`
	ExcludedFlags      []string `yaml:"excluded_flags"`
	ExcludedSpecialUse []string `yaml:"excluded_specialuse"`
	ContentInclusion   string   `yaml:"content_inclusion"`
	ContentTruncation  int64    `yaml:"content_truncation"`
}

var categoryNames = map[string]Category{
	"message":      CategoryMessage,
	"flags":        CategoryFlags,
	"mailbox":      CategoryMailbox,
	"subscription": CategorySubscription,
	"quota":        CategoryQuota,
	"acl":          CategoryACL,
	"access":       CategoryAccess,
	"calendar":     CategoryCalendar,
}

// Resolve validates a FileConfig and produces the immutable Config.
func (f *FileConfig) Resolve() (*Config, error) {
	cfg := &Config{
		NotifierName:       f.Notifier,
		EnabledCategories:  make(map[Category]bool),
		ExcludedFlags:      append([]string(nil), f.ExcludedFlags...),
		ExcludedSpecialUse: append([]string(nil), f.ExcludedSpecialUse...),
		ContentTruncation:  f.ContentTruncation,
	}

	for _, name := range f.Categories {
		cat, ok := categoryNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: category %q", ErrInvalidConfig, name)
		}
		cfg.EnabledCategories[cat] = true
	}

	for _, name := range f.ExtraParams {
		bit, ok := extraParamNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: extra parameter %q", ErrInvalidConfig, name)
		}
		cfg.Extra |= bit
	}

	if f.ContentInclusion != "" {
		mode, ok := inclusionModeNames[strings.ToLower(f.ContentInclusion)]
		if !ok {
			return nil, fmt.Errorf("%w: content inclusion mode %q", ErrInvalidConfig, f.ContentInclusion)
		}
		cfg.ContentInclusion = mode
	}

	if cfg.ContentTruncation < 0 {
		return nil, fmt.Errorf("%w: negative content truncation", ErrInvalidConfig)
	}

	return cfg, nil
}

// configPaths are tried in order by LoadConfig.
var configPaths = []string{
	"/etc/mboxevent/mboxevent.yaml",
	"./config/mboxevent.yaml",
	"./mboxevent.yaml",
}

// LoadConfig reads the first notifier config file found on the standard
// path list and resolves it.
func LoadConfig() (*Config, error) {
	var data []byte
	var err error
	for _, path := range configPaths {
		data, err = os.ReadFile(filepath.Clean(path))
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig resolves YAML config bytes.
func ParseConfig(data []byte) (*Config, error) {
	var f FileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return f.Resolve()
}

// AllCategories enables every category; convenient for tests and for
// deployments that gate per-category at the subscriber instead.
func AllCategories() map[Category]bool {
	return map[Category]bool{
		CategoryMessage:      true,
		CategoryFlags:        true,
		CategoryMailbox:      true,
		CategorySubscription: true,
		CategoryQuota:        true,
		CategoryACL:          true,
		CategoryAccess:       true,
		CategoryCalendar:     true,
	}
}
