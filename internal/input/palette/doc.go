// Package palette provides fuzzy search over registered actions.
//
// Entries are built from action descriptors and searched by title and
// name. Scoring rewards consecutive matches, word boundaries and
// prefixes, and penalizes gaps. Recently executed actions rank higher.
//
// # Usage
//
//	p := palette.New(manager.Actions())
//	results := p.Search("grid", 10)
//	if len(results) > 0 {
//	    _ = app.Execute(results[0].Entry.Name)
//	    p.Record(results[0].Entry.Name)
//	}
package palette
