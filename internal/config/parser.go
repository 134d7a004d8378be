package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/drvsync/internal/browser"
	"github.com/ZebulonRouseFrantzich/drvsync/internal/platform"
)

// configGlobal is the Lua global a config file must assign.
const configGlobal = "drvsync"

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// FileConfig holds the values a Lua config file may set. Nil pointers and
// empty strings mean "not set".
type FileConfig struct {
	InstallRoot     string
	ChromeMirror    string
	EdgeCDN         string
	UserAgent       string
	HTTPTimeout     *time.Duration
	CommandTimeout  *time.Duration
	Retries         *int
	LogDir          string
	LogLevel        string
	LogFormat       string
	BrowserCommands map[browser.Target][]string
}

// Parser evaluates Lua config files.
type Parser struct {
	info *platform.Info
}

// NewParser creates a parser that exposes info as the `platform` table.
// A nil info leaves `platform` undefined.
func NewParser(info *platform.Info) *Parser {
	return &Parser{info: info}
}

// ParseFile reads and evaluates a Lua config file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return p.ParseString(ctx, string(data))
}

// ParseString evaluates Lua config code.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*FileConfig, error) {
	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.info != nil {
		if err := platform.InjectPlatformTable(L, p.info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// extractConfig reads the global drvsync table.
func extractConfig(L *lua.LState) (*FileConfig, error) {
	root := L.GetGlobal(configGlobal)
	if root.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: fmt.Sprintf("missing or invalid '%s' table", configGlobal),
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}
	table := root.(*lua.LTable)

	fc := &FileConfig{}
	var err error

	stringFields := map[string]*string{
		"install_root":  &fc.InstallRoot,
		"chrome_mirror": &fc.ChromeMirror,
		"edge_cdn":      &fc.EdgeCDN,
		"user_agent":    &fc.UserAgent,
		"log_dir":       &fc.LogDir,
		"log_level":     &fc.LogLevel,
		"log_format":    &fc.LogFormat,
	}
	for key, dst := range stringFields {
		if *dst, err = optString(table, key); err != nil {
			return nil, err
		}
	}

	if fc.HTTPTimeout, err = optSeconds(table, "http_timeout"); err != nil {
		return nil, err
	}
	if fc.CommandTimeout, err = optSeconds(table, "command_timeout"); err != nil {
		return nil, err
	}
	if fc.Retries, err = optInt(table, "retries"); err != nil {
		return nil, err
	}

	if cmds := table.RawGetString("browser_commands"); cmds.Type() == lua.LTTable {
		fc.BrowserCommands, err = extractBrowserCommands(cmds.(*lua.LTable))
		if err != nil {
			return nil, err
		}
	} else if cmds.Type() != lua.LTNil {
		return nil, fieldTypeError("browser_commands", "table", cmds)
	}

	return fc, nil
}

// extractBrowserCommands reads { chrome = {"argv0", "arg"...}, msedge = ... }.
// Entries that evaluate to nil (from platform.when) are skipped.
func extractBrowserCommands(table *lua.LTable) (map[browser.Target][]string, error) {
	out := make(map[browser.Target][]string)
	var firstErr error

	table.ForEach(func(key, value lua.LValue) {
		if firstErr != nil || value.Type() == lua.LTNil {
			return
		}

		target, err := browser.ParseTarget(key.String())
		if err != nil || key.String() == "" {
			firstErr = &ParseError{Message: "invalid browser_commands key", Detail: key.String()}
			return
		}

		argvTable, ok := value.(*lua.LTable)
		if !ok {
			firstErr = fieldTypeError("browser_commands."+key.String(), "array of strings", value)
			return
		}

		var argv []string
		for i := 1; i <= argvTable.Len(); i++ {
			arg := argvTable.RawGetInt(i)
			if arg.Type() != lua.LTString {
				firstErr = fieldTypeError(fmt.Sprintf("browser_commands.%s[%d]", key.String(), i), "string", arg)
				return
			}
			argv = append(argv, arg.String())
		}
		out[target] = argv
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func optString(table *lua.LTable, key string) (string, error) {
	v := table.RawGetString(key)
	switch v.Type() {
	case lua.LTNil:
		return "", nil
	case lua.LTString:
		return strings.TrimSpace(v.String()), nil
	default:
		return "", fieldTypeError(key, "string", v)
	}
}

func optInt(table *lua.LTable, key string) (*int, error) {
	v := table.RawGetString(key)
	switch v.Type() {
	case lua.LTNil:
		return nil, nil
	case lua.LTNumber:
		n := int(lua.LVAsNumber(v))
		return &n, nil
	default:
		return nil, fieldTypeError(key, "number", v)
	}
}

func optSeconds(table *lua.LTable, key string) (*time.Duration, error) {
	v := table.RawGetString(key)
	switch v.Type() {
	case lua.LTNil:
		return nil, nil
	case lua.LTNumber:
		d := time.Duration(float64(lua.LVAsNumber(v)) * float64(time.Second))
		return &d, nil
	default:
		return nil, fieldTypeError(key, "number of seconds", v)
	}
}

func fieldTypeError(key, want string, got lua.LValue) error {
	return &ParseError{
		Message: fmt.Sprintf("invalid value for '%s'", key),
		Detail:  fmt.Sprintf("expected %s, got %s", want, got.Type()),
	}
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	if parseErr, ok := err.(*ParseError); ok {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
