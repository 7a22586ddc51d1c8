package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"mixkey/config"
	"mixkey/control"
	"mixkey/hotkey"
	"mixkey/keyhook"
	"mixkey/log"
	"mixkey/mixer"
	"mixkey/notify"
	"mixkey/shutdown"
	"mixkey/tray"
)

var version = "dev"

var (
	engine   *hotkey.Handler
	hook     *keyhook.Hook
	remote   mixer.Remote
	notifier *notify.Notifier

	shutdownOnce sync.Once
)

func gracefulShutdown() {
	shutdownOnce.Do(func() {
		if engine != nil {
			engine.Stop()
		}
		if hook != nil {
			hook.Close()
		}
		if remote != nil {
			if err := remote.Logout(); err != nil {
				log.Warnf("mixer logout: %v", err)
			}
		}
		if notifier != nil {
			notifier.Close()
		}
		log.SessionEnd()
		log.Close()
		tray.Quit()
		os.Exit(0)
	})
}

// restart launches a fresh instance with the same arguments, then shuts
// this one down.
func restart() {
	exe, err := os.Executable()
	if err != nil {
		log.Errorf("restart: %v", err)
		return
	}
	cmd := exec.Command(exe, os.Args[1:]...)
	if err := cmd.Start(); err != nil {
		log.Errorf("restart: %v", err)
		tray.SetError("restart failed: " + err.Error())
		return
	}
	log.Info("restarting")
	gracefulShutdown()
}

func main() {
	configFlag := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location)")
	pausedFlag := flag.Bool("paused", false, "Start with hotkeys paused")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("mixkey %s\n", version)
		os.Exit(0)
	}

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	log.SessionStart(version, *configFlag)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	remote, err = mixer.New()
	if err != nil {
		log.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := remote.Login(); err != nil {
		log.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "Error connecting to mixer: %v\n", err)
		os.Exit(1)
	}

	notifier = notify.New("Mixer Control")
	ctl := control.New(remote, cfg.Settings.VolumeStep, notifier.Show)
	if *pausedFlag {
		ctl.SetPaused(true)
	}

	bindings, err := buildBindings(cfg, ctl)
	if err != nil {
		log.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	hook, err = keyhook.New()
	if err != nil {
		log.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "Error installing keyboard hook: %v\n", err)
		os.Exit(1)
	}

	// Binding collisions surface here, before any hotkey is live.
	engine, err = hotkey.New(hook, bindings, cfg.RepeatDelay(), cfg.RepeatInterval())
	if err != nil {
		hook.Close()
		log.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Infof("listening: %d bindings on %d channels", len(bindings), len(cfg.Channels))

	tray.OnPause(func(on bool) { ctl.SetPaused(on) })
	tray.OnRestart(restart)
	trayQuit := tray.Init()

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	select {
	case <-sigChan:
	case <-trayQuit:
	}
	gracefulShutdown()
}
