// Package webapp wires the identity, telemetry and harvest pieces into the
// demo web application.
package webapp

import (
	"io"

	"github.com/andrebq/hijackbox/authflow"
	"github.com/andrebq/hijackbox/harvest"
	"github.com/andrebq/hijackbox/identity"
	"github.com/andrebq/hijackbox/telemetry"
)

type (
	// State is shared by every request handler and lives as long as the
	// server does.
	State struct {
		Auth      *authflow.Workflow
		Telemetry *telemetry.Counters
		Harvest   *harvest.Harvester
	}
)

// NewState builds the application state. The harvest log is never handed
// to the auth workflow, and users are never visible to the harvester.
func NewState(users identity.Store, captures harvest.Log, entropy io.Reader) *State {
	counters := telemetry.New()
	return &State{
		Auth:      authflow.New(users, counters, entropy),
		Telemetry: counters,
		Harvest:   harvest.New(captures),
	}
}
