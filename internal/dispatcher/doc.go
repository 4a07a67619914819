// Package dispatcher owns the action registry and the manager that turns
// user input into action results.
//
// # Architecture
//
// The dispatcher sits between input sources and the application state:
//
//	Key event ──┐
//	Panel UI  ──┼──► Manager ──► Action.Perform ──► Outcome ──► Updater
//	API call  ──┘       │
//	                    └──► Tracker ──► analytics.Sink
//
// The manager never mutates state. It reads snapshots through accessor
// functions supplied by the host and hands every result to the host's
// Updater, immediate results inline and deferred results once they
// resolve.
//
// # Keyboard resolution
//
// HandleKeyDown collects every visible action whose key test accepts the
// event. Exactly one candidate must remain; zero candidates is a miss and
// two or more is a shortcut conflict, which is logged at Warn level and
// performs nothing. In view mode only actions flagged ViewMode run.
//
// # Usage
//
//	m := dispatcher.New(shell.Apply, shell.State, shell.Elements, shell.Layers, shell,
//		dispatcher.WithLogger(logger),
//		dispatcher.WithSink(sink),
//	)
//	m.RegisterAll(handlers.Builtin(deps))
//
//	if m.HandleKeyDown(&ev) {
//		return
//	}
//
// Registration is expected to finish before the first dispatch.
package dispatcher
