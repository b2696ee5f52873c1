// Package command implements the line based command language of tKV.
//
// A line is trimmed and split on single spaces. The first token selects the command
// (case-insensitive), all other tokens are arguments:
//
//	GET <key>                     -> "<key>: <value>" | "Key not found"
//	SET <key> <type> <value...>   -> "SET successful"
//	DEL <key>                     -> "DEL successful" | "Key not found"
//	TYPE <key>                    -> "<key>: <str|int|float|bool>" | "Key not found"
//	DEBUG                         -> "<key>: TypedValue{Type: ..., Data: [...]}" per pair, sorted by key
//	INFO                          -> database statistics as YAML
//
// Accepted type names for SET are str/string, int/i64, float/f64 and bool (case-insensitive).
// The value of a SET consists of all remaining tokens joined by single spaces, so strings may
// contain spaces. Bool values are the case-sensitive literals true and false.
//
// Every outcome, including usage and parse errors, is reported as output lines. A failed
// command never modifies the store and never stops the caller.
package command
