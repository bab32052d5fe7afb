package async

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtosync/VirtoLang/objects"
)

// lockPair builds the lock/unlock callback pair Spawn/Await expect,
// backed by a real mutex, mirroring how eval.Evaluator wires its own
// single big lock.
func lockPair() (lock, unlock func(), mu *sync.Mutex) {
	mu = &sync.Mutex{}
	return mu.Lock, mu.Unlock, mu
}

func TestSpawnAndAwait_Success(t *testing.T) {
	lock, unlock, mu := lockPair()
	mu.Lock()

	task := Spawn(func() (objects.Value, *objects.Error) {
		return &objects.Integer{Value: 42}, nil
	}, lock, unlock)

	v, err := Await(task, lock, unlock)
	require.Nil(t, err)
	assert.Equal(t, int64(42), v.(*objects.Integer).Value)
	assert.True(t, task.Done())
}

func TestSpawnAndAwait_PropagatesError(t *testing.T) {
	lock, unlock, mu := lockPair()
	mu.Lock()

	task := Spawn(func() (objects.Value, *objects.Error) {
		return nil, &objects.Error{Kind: "RuntimeError", Message: "boom"}
	}, lock, unlock)

	v, err := Await(task, lock, unlock)
	assert.Nil(t, v)
	require.NotNil(t, err)
	assert.Equal(t, "boom", err.Message)
}

func TestTask_DoneIsFalseUntilCompletion(t *testing.T) {
	lock, unlock, mu := lockPair()
	mu.Lock()

	release := make(chan struct{})
	task := Spawn(func() (objects.Value, *objects.Error) {
		<-release
		return objects.NullValue, nil
	}, lock, unlock)

	// The goroutine is blocked trying to acquire the lock we're still
	// holding, so it can't even reach the <-release wait yet.
	assert.False(t, task.Done())

	unlock()
	time.Sleep(10 * time.Millisecond)
	close(release)

	lock()
	v, err := Await(task, lock, unlock)
	require.Nil(t, err)
	assert.Equal(t, objects.NullValue, v)
}

func TestAwait_AlreadyDoneDoesNotBlock(t *testing.T) {
	lock, unlock, mu := lockPair()
	mu.Lock()

	task := Spawn(func() (objects.Value, *objects.Error) {
		return &objects.Integer{Value: 1}, nil
	}, lock, unlock)

	unlock()
	<-task.done
	lock()

	v, err := Await(task, lock, unlock)
	require.Nil(t, err)
	assert.Equal(t, int64(1), v.(*objects.Integer).Value)
}
