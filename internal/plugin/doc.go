// Package plugin loads Lua scripts that declare drawstorm actions.
//
// A script declares actions by calling the global action function:
//
//	action{
//	    name = "toggleBigGrid",
//	    key = "Alt+G",
//	    label = "labels.bigGrid",
//	    category = "canvas",
//	    priority = 1,
//	    view_mode = false,
//	    enabled = function(state) return not state.view_mode end,
//	    perform = function(state)
//	        if state.grid_size == 0 then
//	            return { grid_size = 40 }
//	        end
//	        return { grid_size = 0 }
//	    end,
//	}
//
// perform receives a table with grid_size, view_mode, zen_mode, selected
// (the selection count) and error_message. The table it returns may set
// grid_size, view_mode, zen_mode, error_message and commit; returning
// nothing leaves the app unchanged. A script error surfaces as the
// state's error message.
//
// # Discovery
//
// A Loader scans its search paths for name.lua files and name/init.lua
// directories. Host.LoadAll loads each one into its own sandboxed state:
//
//	host := plugin.NewHost(plugin.WithLogger(logger))
//	defer host.Close()
//	if err := host.LoadAll(plugin.NewLoader(plugin.WithPaths(paths...))); err != nil {
//	    logger.Warn("some plugins failed to load", "err", err)
//	}
//	manager.RegisterAll(host.Actions())
package plugin
