package store

import (
	"slices"

	"userapp/internal/core/domain"
)

type Kind string

const (
	KindFetch      Kind = "fetch"
	KindCreate     Kind = "create"
	KindUpdate     Kind = "update"
	KindDelete     Kind = "delete"
	KindDeleteMany Kind = "deleteMany"
	KindSuppress   Kind = "suppress"
)

type Phase string

const (
	PhaseRequested Phase = "requested"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// State is what the view renders. Users never contains an id that is also
// in DeletedIDs.
type State struct {
	Users      []domain.User
	Loading    bool
	Error      string
	DeletedIDs []int64
}

// Action describes one step of a store operation. Which payload field is
// read depends on Kind.
type Action struct {
	Kind  Kind
	Phase Phase
	Users []domain.User
	User  domain.User
	IDs   []int64
	Err   string
}

// Reduce returns the state that results from applying a to s. It does not
// modify s.
func Reduce(s State, a Action) State {
	next := s.clone()

	if a.Kind == KindSuppress {
		next.DeletedIDs = union(next.DeletedIDs, a.IDs)
		next.Users = without(next.Users, next.DeletedIDs)
		return next
	}

	switch a.Phase {
	case PhaseRequested:
		next.Loading = true
		next.Error = ""
		return next
	case PhaseFailed:
		next.Loading = false
		next.Error = a.Err
		return next
	case PhaseSucceeded:
		next.Loading = false
	default:
		return next
	}

	switch a.Kind {
	case KindFetch:
		next.Users = without(a.Users, next.DeletedIDs)
	case KindCreate:
		if !slices.Contains(next.DeletedIDs, a.User.ID) {
			next.Users = append(next.Users, a.User)
		}
	case KindUpdate:
		for i := range next.Users {
			if next.Users[i].ID == a.User.ID {
				next.Users[i] = a.User
				break
			}
		}
	case KindDelete, KindDeleteMany:
		next.Users = without(next.Users, a.IDs)
	}

	return next
}

func (s State) clone() State {
	return State{
		Users:      slices.Clone(s.Users),
		Loading:    s.Loading,
		Error:      s.Error,
		DeletedIDs: slices.Clone(s.DeletedIDs),
	}
}

func union(set, ids []int64) []int64 {
	for _, id := range ids {
		if !slices.Contains(set, id) {
			set = append(set, id)
		}
	}
	return set
}

func without(users []domain.User, ids []int64) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if !slices.Contains(ids, u.ID) {
			out = append(out, u)
		}
	}
	return out
}
