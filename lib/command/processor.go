package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/ValentinKolb/tKV/lib/value"
	"github.com/lni/dragonboat/v4/logger"
	"gopkg.in/yaml.v3"
)

var (
	log = logger.GetLogger("command")
)

// Output lines of the processor
const (
	MsgGetUsage     = "Usage: GET <key>"
	MsgSetUsage     = "Usage: SET <key> <type> <value>"
	MsgSetTypes     = "Types: str, int, float, bool"
	MsgDelUsage     = "Usage: DEL <key>"
	MsgTypeUsage    = "Usage: TYPE <key>"
	MsgKeyNotFound  = "Key not found"
	MsgSetOK        = "SET successful"
	MsgDelOK        = "DEL successful"
	MsgInvalidInt   = "Invalid integer value"
	MsgInvalidFloat = "Invalid float value"
	MsgInvalidBool  = "Invalid boolean value (use 'true' or 'false')"
	MsgInvalidType  = "Invalid type. Use: str, int, float, bool"
	MsgUnknown      = "Unknown command"
)

// Processor executes command lines against a store.
// It holds no state, the store is passed on every call.
type Processor struct{}

// NewProcessor creates a new command processor
func NewProcessor() *Processor {
	return &Processor{}
}

// Process executes a single line against s and returns the output lines.
// An empty line returns no output. Errors are reported as output lines, never returned.
func (p *Processor) Process(s store.IStore, line string) []string {
	cmd, ok := Parse(line)
	if !ok {
		return nil
	}
	log.Debugf("processing %s with %d args", cmd.Type, cmd.NArgs())

	switch cmd.Type {
	case CommandTGet:
		return p.get(s, cmd)
	case CommandTSet:
		return p.set(s, cmd)
	case CommandTDebug:
		return p.debug(s)
	case CommandTDelete:
		return p.del(s, cmd)
	case CommandTType:
		return p.typeOf(s, cmd)
	case CommandTInfo:
		return p.info(s)
	default:
		return []string{MsgUnknown}
	}
}

// --------------------------------------------------------------------------
// Command handlers
// --------------------------------------------------------------------------

func (p *Processor) get(s store.IStore, cmd Command) []string {
	key := cmd.Arg(0)
	if key == "" {
		return []string{MsgGetUsage}
	}
	v, found, err := s.Get(key)
	if err != nil {
		return errorLine(err)
	}
	if !found {
		return []string{MsgKeyNotFound}
	}
	rendered, err := v.Render()
	if err != nil {
		return errorLine(err)
	}
	return []string{fmt.Sprintf("%s: %s", key, rendered)}
}

func (p *Processor) set(s store.IStore, cmd Command) []string {
	key := cmd.Arg(0)
	if cmd.NArgs() < 3 || key == "" {
		return []string{MsgSetUsage, MsgSetTypes}
	}

	t, ok := value.ParseDataType(strings.ToLower(cmd.Arg(1)))
	if !ok {
		return []string{MsgInvalidType}
	}

	// the value may contain spaces, rejoin everything after the type token
	text := strings.Join(cmd.Tokens[3:], " ")
	v, err := value.Parse(t, text)
	switch {
	case errors.Is(err, value.ErrInvalidInt):
		return []string{MsgInvalidInt}
	case errors.Is(err, value.ErrInvalidFloat):
		return []string{MsgInvalidFloat}
	case errors.Is(err, value.ErrInvalidBool):
		return []string{MsgInvalidBool}
	case err != nil:
		return errorLine(err)
	}

	if err := s.Set(key, v); err != nil {
		return errorLine(err)
	}
	return []string{MsgSetOK}
}

func (p *Processor) debug(s store.IStore) []string {
	type pair struct {
		key string
		v   value.TypedValue
	}
	var pairs []pair
	err := s.Range(func(key string, v value.TypedValue) bool {
		pairs = append(pairs, pair{key, v})
		return true
	})

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	out := make([]string, 0, len(pairs)+1)
	for _, kv := range pairs {
		out = append(out, fmt.Sprintf("%s: %#v", kv.key, kv.v))
	}
	if err != nil {
		out = append(out, errorLine(err)...)
	}
	return out
}

func (p *Processor) del(s store.IStore, cmd Command) []string {
	key := cmd.Arg(0)
	if key == "" {
		return []string{MsgDelUsage}
	}
	deleted, err := s.Delete(key)
	if err != nil {
		return errorLine(err)
	}
	if !deleted {
		return []string{MsgKeyNotFound}
	}
	return []string{MsgDelOK}
}

func (p *Processor) typeOf(s store.IStore, cmd Command) []string {
	key := cmd.Arg(0)
	if key == "" {
		return []string{MsgTypeUsage}
	}
	v, found, err := s.Get(key)
	if err != nil {
		return errorLine(err)
	}
	if !found {
		return []string{MsgKeyNotFound}
	}
	return []string{fmt.Sprintf("%s: %s", key, v.Type().Name())}
}

func (p *Processor) info(s store.IStore) []string {
	info, err := s.GetDBInfo()
	if err != nil {
		return errorLine(err)
	}
	data, err := yaml.Marshal(info)
	if err != nil {
		return errorLine(fmt.Errorf("could not render database info: %w", err))
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// errorLine renders an error as a single output line
func errorLine(err error) []string {
	log.Warningf("command failed: %v", err)
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		return []string{fmt.Sprintf("Error: %s (%s)", storeErr.Msg, storeErr.Code)}
	}
	return []string{fmt.Sprintf("Error: %v", err)}
}
