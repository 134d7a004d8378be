package config

import (
	lua "github.com/yuin/gopher-lua"
)

// blockedGlobals are removed before a config file runs. A drvsync config
// only declares values, so it gets no process, filesystem, loader or
// debug access.
var blockedGlobals = []string{
	"os", "io", "debug",
	"require", "dofile", "loadfile", "load", "loadstring",
	"collectgarbage",
}

// newSandboxedVM creates a Lua VM with blockedGlobals removed. The string,
// table and math libraries stay available.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}
