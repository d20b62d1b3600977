package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.events = append(*j.events, "start "+j.name)
	return nil
}

func (j fakeJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager_StartAndStopOrder(t *testing.T) {
	var events []string
	jm := NewJobManager(
		fakeJob{name: "a", events: &events},
		fakeJob{name: "b", events: &events},
	)

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
}

func TestJobManager_StartFailureStopsStartedJobs(t *testing.T) {
	var events []string
	boom := errors.New("bad schedule")
	jm := NewJobManager(
		fakeJob{name: "a", events: &events},
		fakeJob{name: "b", startErr: boom, events: &events},
		fakeJob{name: "c", events: &events},
	)

	err := jm.StartAll()

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start a", "stop a"}, events)
}

func TestJobManager_StopAllTwice(t *testing.T) {
	var events []string
	jm := NewJobManager(fakeJob{name: "a", events: &events})

	require.NoError(t, jm.StartAll())
	jm.StopAll()
	jm.StopAll()

	assert.Equal(t, []string{"start a", "stop a"}, events)
}
