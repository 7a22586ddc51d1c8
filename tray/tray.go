// Package tray owns the system tray icon and its menu: pause/resume the
// hotkey controller, restart the app, quit.
package tray

import (
	"sync"

	"fyne.io/systray"
)

var (
	quitCh    = make(chan struct{})
	closeOnce sync.Once

	pauseFn   func(bool)
	restartFn func()

	mPause *systray.MenuItem
)

// OnPause registers the callback invoked when the user toggles Pause.
func OnPause(fn func(bool)) { pauseFn = fn }

// OnRestart registers the callback invoked from the Restart menu item.
func OnRestart(fn func()) { restartFn = fn }

// Init starts the tray in the background and returns a channel that closes
// when the user picks Quit.
func Init() <-chan struct{} {
	go systray.Run(onReady, onExit)
	return quitCh
}

func onReady() {
	systray.SetIcon(iconIdle)
	systray.SetTooltip("mixkey")

	mPause = systray.AddMenuItemCheckbox("Pause", "Suspend all hotkeys", false)
	mRestart := systray.AddMenuItem("Restart", "Restart the controller")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Stop the controller")

	go func() {
		for {
			select {
			case <-mPause.ClickedCh:
				paused := !mPause.Checked()
				SetPaused(paused)
				if pauseFn != nil {
					pauseFn(paused)
				}
			case <-mRestart.ClickedCh:
				if restartFn != nil {
					restartFn()
				}
			case <-mQuit.ClickedCh:
				closeOnce.Do(func() { close(quitCh) })
				return
			}
		}
	}()
}

func onExit() {
	closeOnce.Do(func() { close(quitCh) })
}

// SetPaused syncs the menu checkbox and icon with the controller state.
func SetPaused(on bool) {
	if mPause == nil {
		return
	}
	if on {
		mPause.Check()
		systray.SetIcon(iconPaused)
		systray.SetTooltip("mixkey (paused)")
	} else {
		mPause.Uncheck()
		systray.SetIcon(iconIdle)
		systray.SetTooltip("mixkey")
	}
}

// SetError surfaces the last failure in the tray tooltip.
func SetError(msg string) {
	systray.SetTooltip("mixkey – " + msg)
}

// Quit tears the tray down.
func Quit() {
	systray.Quit()
}
