// Package snapshot serializes the full registry state to a fixed-schema
// binary blob and restores it. The layout carries no version tag, so byte
// order and field widths must stay exactly as written for interoperability
// with previously persisted snapshots.
package snapshot

import (
	"fmt"

	"github.com/viant/grid/internal/wire"
	"github.com/viant/grid/model/machine"
	"github.com/viant/grid/model/user"
	"github.com/viant/grid/service/registry"
)

// Encode serializes the registry: both id counters, then the user count and
// user records, then the machine count and machine records. Entities are
// written in ascending id order so the encoding is deterministic for a given
// registry state. State the format cannot represent, e.g. a name over the
// string limit, yields an error rather than a payload that will not decode.
func Encode(reg *registry.Service) ([]byte, error) {
	w := wire.NewWriter()
	w.PutUint32(reg.LastUserID())
	w.PutUint32(reg.LastMachineID())

	users := reg.Users()
	w.PutUint32(uint32(len(users)))
	for _, aUser := range users {
		aUser.Encode(w)
	}

	machines := reg.Machines()
	w.PutUint32(uint32(len(machines)))
	for _, aMachine := range machines {
		aMachine.Encode(w)
	}
	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("snapshot: failed to encode: %w", err)
	}
	return w.Bytes(), nil
}

// Decode reconstructs a fresh registry from the supplied payload. Counters
// are restored verbatim before entities are re-inserted, so restored entities
// go through the id-preserving insert path and future auto-assignment cannot
// collide with them. Truncated or malformed input yields an error; a partial
// registry is never returned.
func Decode(data []byte) (*registry.Service, error) {
	r := wire.NewReader(data)
	reg := registry.New()

	lastUserID, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to decode user counter: %w", err)
	}
	lastMachineID, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to decode machine counter: %w", err)
	}
	reg.RestoreCounters(lastUserID, lastMachineID)

	userCount, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to decode user count: %w", err)
	}
	for i := uint32(0); i < userCount; i++ {
		aUser, err := user.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("snapshot: failed to decode user %d of %d: %w", i+1, userCount, err)
		}
		reg.AddUser(aUser)
	}

	machineCount, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to decode machine count: %w", err)
	}
	for i := uint32(0); i < machineCount; i++ {
		aMachine, err := machine.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("snapshot: failed to decode machine %d of %d: %w", i+1, machineCount, err)
		}
		reg.AddMachine(aMachine)
	}
	return reg, nil
}
