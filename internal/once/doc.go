// Package once provides the once-flag used by the manual-storage singleton.
//
// Flag
//
// Flag is a stateful version of sync.Once which can be passed around to other functions.
// It can report whether it has already been DONE, let goroutines wait for that, and be re-armed
// with Reset or Undo so that the guarded block runs again. Undo is what allows an explicitly
// destroyed singleton to be constructed anew.
//
// The singleton uses Do, Done(false) and Undo. Done(true), Reset, Close and WithSuppressPanic
// are kept so the flag stays a complete primitive on its own.
//
// Flag is concurrency safe and has well defined behavior for concurrent access. See the test cases.
package once
