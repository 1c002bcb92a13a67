package controller

import (
	"errors"
	"strings"
)

// Action is the closed set of mutations MutateComment dispatches on.
type Action int

const (
	ActionCreate Action = iota + 1
	ActionUpdate
	ActionDelete
)

var ErrInvalidAction = errors.New("invalid action")

var actionNames = map[Action]string{
	ActionCreate: "create",
	ActionUpdate: "update",
	ActionDelete: "delete",
}

func Actions() []Action {
	return []Action{ActionCreate, ActionUpdate, ActionDelete}
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction is case insensitive.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range Actions() {
		if actionNames[a] == s {
			return a, nil
		}
	}
	return 0, ErrInvalidAction
}

func actionList() string {
	names := make([]string, 0, len(actionNames))
	for _, a := range Actions() {
		names = append(names, a.String())
	}
	return strings.Join(names, ", ")
}
