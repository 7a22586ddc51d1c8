package mixer

import (
	"fmt"
	"sync"
)

// FakeRemote is an in-memory Remote for tests and non-Windows development.
type FakeRemote struct {
	mu       sync.Mutex
	loggedIn bool
	dirty    bool
	gains    map[int]float64
	mutes    map[int]bool

	// FailNext makes the next parameter call return an error.
	FailNext bool
}

func NewFake() *FakeRemote {
	return &FakeRemote{
		gains: make(map[int]float64),
		mutes: make(map[int]bool),
	}
}

func (f *FakeRemote) Login() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedIn = true
	return nil
}

func (f *FakeRemote) Logout() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedIn = false
	return nil
}

func (f *FakeRemote) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.dirty
	f.dirty = false
	return d
}

// MarkDirty simulates a parameter change made outside this process.
func (f *FakeRemote) MarkDirty() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirty = true
}

func (f *FakeRemote) failNext() error {
	if f.FailNext {
		f.FailNext = false
		return fmt.Errorf("mixer: simulated failure")
	}
	return nil
}

func (f *FakeRemote) Gain(strip int) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext(); err != nil {
		return 0, err
	}
	return f.gains[strip], nil
}

func (f *FakeRemote) SetGain(strip int, db float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext(); err != nil {
		return err
	}
	f.gains[strip] = db
	return nil
}

func (f *FakeRemote) Muted(strip int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext(); err != nil {
		return false, err
	}
	return f.mutes[strip], nil
}

func (f *FakeRemote) SetMute(strip int, mute bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext(); err != nil {
		return err
	}
	f.mutes[strip] = mute
	return nil
}
