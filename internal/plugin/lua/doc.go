// Package lua wraps a sandboxed gopher-lua runtime.
//
// # Sandbox
//
// NewState opens only the base, table, string and math libraries and
// removes dofile, loadfile, load, loadstring, require and module, so
// scripts cannot reach the filesystem or load further code. print is
// redirected to the WithPrint sink.
//
//	state := lua.NewState(lua.WithPrint(func(s string) { logger.Info(s) }))
//	defer state.Close()
//
//	if err := state.DoFile("zoom.lua"); err != nil {
//	    return err
//	}
//
// Every entry point runs under the execution timeout; a script that
// loops forever fails with ErrExecutionTimeout.
package lua
