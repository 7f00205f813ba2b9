// Package overlay projects simulation snapshots into a declarative status view.
//
// Everything in this package is a pure function of its inputs. The composer
// never mutates the worlds it is given, performs no I/O and never fails:
// missing data (no connection yet, no selected task, no hovered cell, absent
// grid rows) degrades into a smaller view instead of an error.
//
// # Components
//
//   - [BuildTeams]: sorted team list with stable palette indices
//   - [BuildTaskCatalog]: selectable task list and the selected task
//   - [LayoutPattern]: bounding box and cell size for a task's block pattern
//   - [Inspect]: facts about whatever occupies a grid cell
//   - [Composer]: dispatches between the error, loading and connected views
//
// # Usage
//
//	c := overlay.NewComposer(overlay.DefaultLayoutOptions())
//	v := c.Render(overlay.State{
//	    Conn:      overlay.ConnConnected,
//	    Static:    static,
//	    Dynamic:   dynamic,
//	    Selection: overlay.Selection{}.WithTask("task3"),
//	})
//
// Selections are immutable values. Input handlers derive a new [Selection]
// and re-render; the composer can be called as often as needed and always
// returns structurally identical output for identical input.
package overlay
