/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package assign decides, per variable and platform, whether persisted code
// syntax is written, overwritten, removed or left alone.
package assign

import (
	"fmt"

	"bennypowers.dev/codesyntax/document"
	"bennypowers.dev/codesyntax/variable"
)

// State is the assignment state of one (variable, platform) pair.
type State int

// Assignment states. Cleared is terminal for a run.
const (
	Unset State = iota
	Set
	Cleared
)

func (s State) String() string {
	switch s {
	case Unset:
		return "unset"
	case Set:
		return "set"
	case Cleared:
		return "cleared"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Action is what the assigner does to a pair.
type Action int

// Assignment actions.
const (
	None Action = iota
	Write
	Overwrite
	Remove
)

func (a Action) String() string {
	switch a {
	case None:
		return "none"
	case Write:
		return "write"
	case Overwrite:
		return "overwrite"
	case Remove:
		return "remove"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Intent carries the user's per-platform force and clear flags.
type Intent struct {
	Force bool
	Clear bool
}

// StateOf returns the current state of v on platform p.
func StateOf(v *variable.Variable, p variable.Platform) State {
	if v.HasCodeSyntax(p) {
		return Set
	}
	return Unset
}

// Decide maps a state and intent to an action:
//
//	Unset, any intent      -> Write
//	Set, clear             -> Remove (force is ignored)
//	Set, force             -> Overwrite
//	Set, neither           -> None
//	Cleared                -> None
func Decide(current State, intent Intent) Action {
	switch current {
	case Unset:
		return Write
	case Set:
		switch {
		case intent.Clear:
			return Remove
		case intent.Force:
			return Overwrite
		}
	}
	return None
}

// Next returns the state after applying a to current.
func Next(current State, a Action) State {
	switch a {
	case Write, Overwrite:
		return Set
	case Remove:
		return Cleared
	}
	return current
}

// Apply decides the action for v on p and performs it on w.
// At most one write or remove call is made. With dryRun the decision is
// returned without touching w.
func Apply(w document.Writer, v *variable.Variable, p variable.Platform, value string, intent Intent, dryRun bool) (Action, error) {
	action := Decide(StateOf(v, p), intent)
	if dryRun {
		return action, nil
	}

	var err error
	switch action {
	case Write, Overwrite:
		err = w.SetCodeSyntax(v, p, value)
	case Remove:
		err = w.RemoveCodeSyntax(v, p)
	}
	if err != nil {
		return None, fmt.Errorf("%s %s code syntax: %w", action, p, err)
	}
	return action, nil
}
