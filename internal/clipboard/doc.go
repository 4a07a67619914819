// Package clipboard moves drawing data between the editor and a clipboard.
//
// A Bridge is the boundary to the clipboard itself. System talks to the
// operating system clipboard and only carries text; Memory keeps
// everything in process and is used by tests and headless runs.
//
// Elements travel as a JSON payload tagged with PayloadType so that paste
// can tell drawing data apart from plain text:
//
//	{"type":"drawstorm/clipboard","elements":[...],"files":{...}}
package clipboard
