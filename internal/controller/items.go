package controller

import (
	"errors"
	"fmt"

	"github.com/jvaz/prdeck/internal/github"
)

// PRType selects which of the two views an operation targets.
type PRType int

const (
	PRTypeOpen PRType = iota
	PRTypeApproved
)

// IconVariant tells the presentation layer which asset to render. The
// controller decides the variant; asset selection stays downstream.
type IconVariant int

const (
	IconNormal IconVariant = iota
	IconOwn
	IconApproved
	IconOwnApproved
	IconError
)

// EventKind discriminates Event payloads.
type EventKind int

const (
	// EventMultiselect asks the presentation layer to add the item's URL
	// to the multi-open accumulation and re-render the view.
	EventMultiselect EventKind = iota + 1
	// EventApprovedPRs asks the presentation layer to switch to the
	// approved view.
	EventApprovedPRs
)

// Event is an immutable, payload-carrying message emitted back to the
// subscribing presentation layer.
type Event struct {
	Kind   EventKind
	PRType PRType // view the multiselect was started from
	URL    string // pull request the event refers to
}

// ActionKind discriminates what triggering an action does.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionOpenURL
	ActionEmit
)

// Action is what a display item does when activated: open a URL in the
// browser, emit an Event back to the presentation layer, or nothing.
type Action struct {
	Kind  ActionKind
	URL   string
	Event Event
}

// DisplayItem is one row of the rendered list.
type DisplayItem struct {
	Title    string
	Subtitle string
	Icon     IconVariant
	Primary  Action
	Alt      Action
}

// ErrorItem renders a fetch failure as a single inert list entry, the
// way the presentation layer shows it in place of results.
func ErrorItem(err error) DisplayItem {
	title := "Error getting Pull Requests"
	description := err.Error()
	var fetchErr *github.FetchError
	if errors.As(err, &fetchErr) {
		title = fetchErr.Title
		description = fetchErr.Description
	}
	return DisplayItem{
		Title:    title,
		Subtitle: description,
		Icon:     IconError,
		Primary:  Action{Kind: ActionNone},
	}
}

func approvedButton(count int) DisplayItem {
	return DisplayItem{
		Title:    "Approved Pull Requests",
		Subtitle: fmt.Sprintf("View %d approved Pull Requests", count),
		Icon:     IconApproved,
		Primary:  Action{Kind: ActionEmit, Event: Event{Kind: EventApprovedPRs}},
	}
}
