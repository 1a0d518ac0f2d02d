package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownStatus(t *testing.T) {
	for _, status := range Stages {
		assert.True(t, KnownStatus(status), status)
	}
	assert.False(t, KnownStatus("Archived"))
	assert.False(t, KnownStatus(""))
	assert.False(t, KnownStatus("won"))
}

func TestTerminalAndActivePartitionTheStages(t *testing.T) {
	for _, status := range Stages {
		assert.NotEqual(t, IsTerminal(status), IsActive(status), status)
	}

	assert.True(t, IsTerminal(StatusWon))
	assert.True(t, IsTerminal(StatusLost))
	assert.True(t, IsActive(StatusNew))
	assert.True(t, IsActive(StatusContacted))
	assert.True(t, IsActive(StatusProposalSent))

	// Unknown statuses are neither.
	assert.False(t, IsTerminal("Archived"))
	assert.False(t, IsActive("Archived"))
}
