package memory_test

import (
	"testing"

	"github.com/switchboard-dev/switchboard/pkg/adapters/memory"
	"github.com/switchboard-dev/switchboard/pkg/ports"
	"github.com/switchboard-dev/switchboard/pkg/session"
)

func TestGraphStore_Contract(t *testing.T) {
	ports.RunGraphStoreContract(t, memory.NewGraphStore())
}

func TestSessionStore_Contract(t *testing.T) {
	session.RunStoreContract(t, memory.NewSessionStore())
}
