// Package task defines the tracked task variants and the ordered task list.
//
// A task is one of three kinds, distinguished by a one-letter tag:
//
//	T  todo      description only
//	D  deadline  description and a due time (by)
//	E  event     description and a time range (from, to)
//
// # Canonical Render
//
// Every task renders to a single line that is used both for display and
// for on-disk storage:
//
//	[T][ ] read book
//	[D][X] submit report (by: Mar 01 2025 1800)
//	[E][ ] trip (from: Apr 01 2025 0900 to: Apr 03 2025 1800)
//
// The status cell holds "X" when the task is done and a single space
// otherwise. Dates use the display layout "Jan 02 2006 1504".
//
// # Priority
//
// Tasks carry a priority of LOW (default), MEDIUM or HIGH. Upgrading a HIGH
// task or downgrading a LOW task is a no-op. Priority is not part of the
// canonical render.
//
// # Positions
//
// The list is addressed by 0-based position. Deleting a task shifts every
// later task down by one; there are no stable IDs.
package task
