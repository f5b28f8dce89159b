// Package stage describes the order production pipeline as a finite state
// machine. Adding a state or an edge is a change to the transitions table.
package stage

import (
	"strings"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
)

var states = []enum.OrderStatus{
	enum.OrderStatusPending,
	enum.OrderStatusWorking,
	enum.OrderStatusDone,
	enum.OrderStatusReady,
	enum.OrderStatusDelivered,
	enum.OrderStatusArchived,
}

// transitions is the adjacency table. Order of targets is the order shown to
// callers when a transition is refused.
var transitions = map[enum.OrderStatus][]enum.OrderStatus{
	enum.OrderStatusPending:   {enum.OrderStatusWorking, enum.OrderStatusDone, enum.OrderStatusReady, enum.OrderStatusDelivered, enum.OrderStatusArchived},
	enum.OrderStatusWorking:   {enum.OrderStatusPending, enum.OrderStatusDone, enum.OrderStatusReady, enum.OrderStatusDelivered, enum.OrderStatusArchived},
	enum.OrderStatusDone:      {enum.OrderStatusPending, enum.OrderStatusWorking, enum.OrderStatusReady, enum.OrderStatusDelivered, enum.OrderStatusArchived},
	enum.OrderStatusReady:     {enum.OrderStatusPending, enum.OrderStatusWorking, enum.OrderStatusDone, enum.OrderStatusDelivered, enum.OrderStatusArchived},
	enum.OrderStatusDelivered: {enum.OrderStatusPending, enum.OrderStatusWorking, enum.OrderStatusDone, enum.OrderStatusReady, enum.OrderStatusArchived},
	enum.OrderStatusArchived:  {enum.OrderStatusPending},
}

// Initial is the status assigned at intake.
const Initial = enum.OrderStatusPending

// States returns every known status in pipeline order.
func States() []enum.OrderStatus {
	out := make([]enum.OrderStatus, len(states))
	copy(out, states)
	return out
}

// IsValid reports whether s is a known status.
func IsValid(s enum.OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// AllowedTransitions returns the legal targets from a status. Unknown
// statuses have none.
func AllowedTransitions(from enum.OrderStatus) []enum.OrderStatus {
	targets := transitions[from]
	out := make([]enum.OrderStatus, len(targets))
	copy(out, targets)
	return out
}

// CanTransition reports whether from -> to is an edge of the table.
func CanTransition(from, to enum.OrderStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// RequiresRecordedWork reports whether entering the status needs labour on record.
func RequiresRecordedWork(to enum.OrderStatus) bool {
	return to == enum.OrderStatusDone || to == enum.OrderStatusReady
}

// ReportsTaskCompletion reports whether the transition result carries the
// informational all-tasks-complete flag.
func ReportsTaskCompletion(to enum.OrderStatus) bool {
	return RequiresRecordedWork(to)
}

// TriggersTaskCreation reports whether entering the status provisions garment tasks.
func TriggersTaskCreation(to enum.OrderStatus) bool {
	return to == enum.OrderStatusWorking
}

// EmitsStatusWebhook reports whether entering the status is announced to integrations.
func EmitsStatusWebhook(to enum.OrderStatus) bool {
	return to == enum.OrderStatusReady || to == enum.OrderStatusDelivered
}

// NotifiesClient reports whether entering the status may message the client.
func NotifiesClient(to enum.OrderStatus) bool {
	return to == enum.OrderStatusReady || to == enum.OrderStatusDelivered
}

// FormatAllowed renders the legal targets for error messages, e.g. "pending, working".
func FormatAllowed(from enum.OrderStatus) string {
	targets := transitions[from]
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
