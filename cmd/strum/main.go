package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"strum/device"
	"strum/player"
	"strum/source"
	"strum/transport"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: strum <audio-file>")
		return 1
	}
	path := os.Args[1]

	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			return 1
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	dec, err := source.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer dec.Close()
	log.Printf("source: %dHz, %d channel(s)", dec.SampleRate(), dec.Channels())

	tags, err := source.ReadTags(path)
	if err != nil {
		log.Println("failed to read tags:", err)
	}
	if tags.Title == "" {
		// Always have at least something to show on the player.
		tags.Title = filepath.Base(path)
	}

	if err := device.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "error: failed to initialize audio:", err)
		return 1
	}
	defer device.Terminate()

	format, err := device.DefaultFormat()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	log.Printf("output: %dHz, %d channel(s)", format.SampleRate, format.Channels)

	state := transport.New()
	sess, err := player.NewSession(dec, player.OutputFormat{
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
	}, state)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	out, err := device.Open(format, sess.Callback)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer out.Close()
	if err := out.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "error: failed to start output stream:", err)
		return 1
	}

	go sess.Run()

	if _, err := tea.NewProgram(initialModel(state, sess, tags, dec.Duration())).Run(); err != nil {
		log.Printf("tea program got error: %v", err)
	}

	// The UI is gone; make sure the decode goroutine follows.
	state.RequestStop()
	<-sess.Done()
	if err := sess.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "playback error:", err)
	}
	return 0
}
